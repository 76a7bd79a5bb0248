package models

// Base carries the string document key shared by every persisted entity.
type Base struct {
	ID string `bson:"_id" json:"id"`
}

func (b *Base) GetID() string   { return b.ID }
func (b *Base) SetID(id string) { b.ID = id }
