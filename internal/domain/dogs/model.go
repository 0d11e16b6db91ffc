package dogs

// Dog representa un perro registrado en la práctica.
type Dog struct {
	ID int

	Name   string
	Age    int     // años
	Race   string  // raza
	Weight float64 // kg

	// OwnerID no se valida contra owners existentes (importaciones pueden
	// crear el perro antes que el dueño).
	OwnerID int

	Description string

	// Imagen en disco: nombre de archivo generado + content type.
	ImagePath        string
	ImageContentType string
}

// HasImage indica si el perro tiene una imagen almacenada.
func (d Dog) HasImage() bool {
	return d.ImagePath != ""
}
