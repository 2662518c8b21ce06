package stratum

// WorldEvents are optional hooks a host application can wire in to observe
// archetype and entity lifecycle without stratum depending on a logging or
// metrics framework for its hot data path — generalized from the teacher's
// table.TableEvents hook, which served the same purpose for its own storage
// layer.
type WorldEvents struct {
	OnArchetypeCreated func(ty ArchetypeHash)
	OnEntitySpawned    func(id EntityId)
	OnEntityDespawned  func(id EntityId)
	OnMigration        func(id EntityId, from, to ArchetypeHash)
}

func (e WorldEvents) archetypeCreated(ty ArchetypeHash) {
	if e.OnArchetypeCreated != nil {
		e.OnArchetypeCreated(ty)
	}
}

func (e WorldEvents) entitySpawned(id EntityId) {
	if e.OnEntitySpawned != nil {
		e.OnEntitySpawned(id)
	}
}

func (e WorldEvents) entityDespawned(id EntityId) {
	if e.OnEntityDespawned != nil {
		e.OnEntityDespawned(id)
	}
}

func (e WorldEvents) migration(id EntityId, from, to ArchetypeHash) {
	if e.OnMigration != nil {
		e.OnMigration(id, from, to)
	}
}
