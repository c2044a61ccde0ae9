package domain

// RecetaFavorita links a Usuario to a Receta they marked as favorite
type RecetaFavorita struct {
	ID        uint    `gorm:"primaryKey" json:"id"`                                                  // Primary key
	UsuarioID uint    `gorm:"not null;uniqueIndex:idx_usuario_receta" json:"usuario_id"`             // Foreign key to Usuario
	RecetaID  uint    `gorm:"not null;uniqueIndex:idx_usuario_receta" json:"receta_id"`              // Foreign key to Receta
	Receta    *Receta `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"receta,omitempty"` // Preloaded recipe
	CreatedAt int64   `gorm:"autoCreateTime:milli" json:"created_at"`                                // Timestamp of creation in milliseconds
}

func (RecetaFavorita) TableName() string {
	return "recetas_favoritas"
}
