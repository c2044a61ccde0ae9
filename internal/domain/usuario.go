package domain

// Usuario Model
type Usuario struct {
	ID            uint             `gorm:"primaryKey" json:"id"`                                                        // Primary key
	Nombre        string           `json:"nombre"`                                                                      // First name
	Apellidos     string           `json:"apellidos"`                                                                   // Last names
	NombreUsuario string           `json:"nombre_usuario"`                                                              // Display handle
	Email         string           `gorm:"uniqueIndex;not null;size:191" json:"email"`                                  // Unique email
	Password      string           `gorm:"not null" json:"-"`                                                           // Hashed password
	Recetas       []Receta         `gorm:"foreignKey:UsuarioID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"` // Owned recipes
	Favoritas     []RecetaFavorita `gorm:"foreignKey:UsuarioID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"` // Favorited recipes
}
