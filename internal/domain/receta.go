package domain

// Receta Model
type Receta struct {
	ID                uint          `gorm:"primaryKey" json:"id"`                               // Primary key
	Titulo            string        `gorm:"not null" json:"titulo"`                             // Recipe title
	Descripcion       string        `json:"descripcion"`                                        // Short description
	Instrucciones     string        `json:"instrucciones"`                                      // Preparation steps
	TiempoPreparacion int           `json:"tiempo_preparacion"`                                 // Minutes
	ImagenURL         string        `json:"imagen_url"`                                         // Picture URL
	UsuarioID         uint          `gorm:"not null;index" json:"usuario_id"`                   // Foreign key to owner
	Ingredientes      []Ingrediente `gorm:"many2many:receta_ingredientes;" json:"ingredientes"` // Many-to-many via receta_ingredientes
	CreatedAt         int64         `gorm:"autoCreateTime:milli" json:"created_at"`             // Timestamp of creation in milliseconds
}

// TableName pins the table name independent of pluralization rules
func (Receta) TableName() string {
	return "recetas"
}
