package schema

// Nature describes how a relation links an entity to its target.
type Nature string

const (
	// OneWay links to a single target without an inverse side.
	OneWay Nature = "oneWay"
	// ManyWay links to many targets without an inverse side.
	ManyWay Nature = "manyWay"
	// OneToOne links to a single target that links back to a single entity.
	OneToOne Nature = "oneToOne"
	// ManyToOne links to a single target shared by many entities.
	ManyToOne Nature = "manyToOne"
	// OneToMany links to many targets owned by this entity.
	OneToMany Nature = "oneToMany"
	// ManyToMany links to many targets shared by many entities.
	ManyToMany Nature = "manyToMany"
	// OneToOneMorph is a polymorphic single link.
	OneToOneMorph Nature = "oneToOneMorph"
	// ManyToOneMorph is a polymorphic single link shared by many entities.
	ManyToOneMorph Nature = "manyToOneMorph"
	// OneToManyMorph is a polymorphic single link seen from the owning entity.
	OneToManyMorph Nature = "oneToManyMorph"
	// ManyToManyMorph is a polymorphic multi link.
	ManyToManyMorph Nature = "manyToManyMorph"
)

// Storage tells where the link of a relation is persisted.
type Storage int

const (
	// StorageUnknown marks a relation whose descriptor is incomplete.
	StorageUnknown Storage = iota
	// StorageColumn keeps the target id in a column of the entity table.
	StorageColumn
	// StorageForeignKey keeps the entity id in a column of the target table.
	StorageForeignKey
	// StorageJoinTable keeps (entity id, target id) pairs in a link table.
	StorageJoinTable
	// StorageMorph keeps (target id, entity id, entity type, field) rows in a shared link table.
	StorageMorph
)

// Relation declares one relational field of an entity.
type Relation struct {
	Alias        string `yaml:"alias"`
	Nature       Nature `yaml:"nature"`
	Target       string `yaml:"target"`
	TargetKey    string `yaml:"targetKey,omitempty"`
	AutoPopulate bool   `yaml:"autoPopulate"`

	// Column is the foreign key column on the entity table.
	Column string `yaml:"column,omitempty"`
	// ForeignKey is the column on the target table pointing back at the entity.
	ForeignKey string `yaml:"foreignKey,omitempty"`

	// JoinTable with JoinForeignKey (entity side) and JoinReferences (target side).
	JoinTable      string `yaml:"joinTable,omitempty"`
	JoinForeignKey string `yaml:"joinForeignKey,omitempty"`
	JoinReferences string `yaml:"joinReferences,omitempty"`

	// MorphType and MorphField name the discriminator columns of a morph JoinTable.
	MorphType  string `yaml:"morphType,omitempty"`
	MorphField string `yaml:"morphField,omitempty"`
}

// Multi reports whether the relation holds a set of targets.
func (n Nature) Multi() bool {
	switch n {
	case ManyWay, OneToMany, ManyToMany, ManyToManyMorph:
		return true
	default:
		return false
	}
}

// Morph reports whether the nature is polymorphic.
func (n Nature) Morph() bool {
	switch n {
	case OneToOneMorph, ManyToOneMorph, OneToManyMorph, ManyToManyMorph:
		return true
	default:
		return false
	}
}

// Known reports whether n is one of the declared natures.
func (n Nature) Known() bool {
	switch n {
	case OneWay, ManyWay, OneToOne, ManyToOne, OneToMany, ManyToMany,
		OneToOneMorph, ManyToOneMorph, OneToManyMorph, ManyToManyMorph:
		return true
	default:
		return false
	}
}

// Empty returns the value that detaches every target of a relation:
// nil for single-valued natures and an empty set for multi-valued ones.
func (r Relation) Empty() any {
	if r.Nature.Multi() {
		return []any{}
	}

	return nil
}

// Storage derives the persistence form from the nature and the declared columns.
func (r Relation) Storage() Storage {
	switch {
	case r.Nature.Morph():
		if r.JoinTable != "" && r.JoinForeignKey != "" && r.JoinReferences != "" &&
			r.MorphType != "" && r.MorphField != "" {
			return StorageMorph
		}
	case r.Nature == ManyWay || r.Nature == ManyToMany:
		if r.JoinTable != "" && r.JoinForeignKey != "" && r.JoinReferences != "" {
			return StorageJoinTable
		}
	case r.Nature == OneToMany:
		if r.ForeignKey != "" {
			return StorageForeignKey
		}
	case r.Nature == OneToOne:
		if r.Column != "" {
			return StorageColumn
		}

		if r.ForeignKey != "" {
			return StorageForeignKey
		}
	case r.Nature == OneWay || r.Nature == ManyToOne:
		if r.Column != "" {
			return StorageColumn
		}
	}

	return StorageUnknown
}

// Key returns the primary key column of the target table.
func (r Relation) Key() string {
	if r.TargetKey == "" {
		return DefaultPrimaryKey
	}

	return r.TargetKey
}
