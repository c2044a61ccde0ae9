package domain

// Ingrediente Model
type Ingrediente struct {
	ID     uint   `gorm:"primaryKey" json:"id"`                        // Primary key
	Nombre string `gorm:"uniqueIndex;not null;size:191" json:"nombre"` // Unique ingredient name
}

func (Ingrediente) TableName() string {
	return "ingredientes"
}
