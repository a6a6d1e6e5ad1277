package components

import (
	"engagement-scheduler/internal/infra/notifier"
	"engagement-scheduler/internal/infra/repository"
	"engagement-scheduler/internal/usecase/commands"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		// Subject
		repository.NewSubjectReadStore,
		func(s *repository.SubjectReadStore) commands.SubjectRepository { return s },
		func(s *repository.SubjectReadStore) notifier.AddressBook { return s },
		// Marker
		repository.NewMarkerRepository,
		func(m *repository.MarkerRepository) commands.MarkerStore { return m },
	),
)
