package geoportal

import "math"

// SearchResult is the response returned by the station search endpoint.
// Beyond the bounding box and the station list the body is passed through
// unchanged to callers.
type SearchResult struct {
	BBox       BoundingBox `json:"bbox"`
	Estaciones []Station   `json:"estaciones"`
}

// BoundingBox is the rectangular geographic extent covering a result set.
type BoundingBox struct {
	X0                 float64 `json:"x0"`
	Y0                 float64 `json:"y0"`
	X1                 float64 `json:"x1"`
	Y1                 float64 `json:"y1"`
	Initialized        bool    `json:"initialized"`
	LatitudeSeparation float64 `json:"latitudeSeparation"`
}

// Union returns the smallest box covering both b and other. The merged box
// keeps the maximum latitude separation of the two and is always marked
// initialized.
func (b BoundingBox) Union(other BoundingBox) BoundingBox {
	return BoundingBox{
		X0:                 math.Min(b.X0, other.X0),
		Y0:                 math.Min(b.Y0, other.Y0),
		X1:                 math.Max(b.X1, other.X1),
		Y1:                 math.Max(b.Y1, other.Y1),
		Initialized:        true,
		LatitudeSeparation: math.Max(b.LatitudeSeparation, other.LatitudeSeparation),
	}
}

// Station is a single price entry in a search result. FuelID is not part
// of the upstream response; it is stamped locally with the product id that
// produced the entry.
type Station struct {
	ID       *int64      `json:"id"`
	Precio   *float64    `json:"precio"`
	FuelID   string      `json:"fuelId,omitempty"`
	Estacion StationInfo `json:"estacion"`
	Producto ProductInfo `json:"producto"`
	Rango    *string     `json:"rango"`
	Favorita bool        `json:"favorita"`
}

// StationInfo describes the fuel station itself.
type StationInfo struct {
	ID              *int64   `json:"id"`
	Rotulo          string   `json:"rotulo"`
	Operador        string   `json:"operador"`
	Direccion       string   `json:"direccion"`
	Margen          string   `json:"margen"`
	CodPostal       string   `json:"codPostal"`
	Provincia       string   `json:"provincia"`
	Municipio       string   `json:"municipio"`
	Localidad       string   `json:"localidad"`
	FechaPvp        string   `json:"fechaPvp"`
	HoraPvp         string   `json:"horaPvp"`
	TipoVenta       string   `json:"tipoVenta"`
	Remision        string   `json:"remision"`
	CoordenadaX     string   `json:"coordenadaX"`
	CoordenadaY     string   `json:"coordenadaY"`
	CoordenadaXDec  *float64 `json:"coordenadaX_dec"`
	CoordenadaYDec  *float64 `json:"coordenadaY_dec"`
	Horario         string   `json:"horario"`
	TipoServicio    string   `json:"tipoServicio"`
	NombreCCAA      string   `json:"nombreCCAA"`
	TipoRango       string   `json:"tipoRango"`
	TipoEstacion    string   `json:"tipoEstacion"`
	PorcBioetanol   *float64 `json:"porcBioetanol"`
	PorcBioalcohol  *float64 `json:"porcBioalcohol"`
	Servicios       string   `json:"servicios"`
	ImagenEESS      string   `json:"imagenEESS"`
	PlanesDescuento string   `json:"planesDescuento"`
	Favorita        bool     `json:"favorita"`
	Valoracion      *float64 `json:"valoracion"`
	Precio          *float64 `json:"precio"`
}

// ProductInfo describes the fuel product a price refers to.
type ProductInfo struct {
	ID          *int64 `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Activo      *bool  `json:"activo"`
	Terrestre   *bool  `json:"terrestre"`
	Embarcacion *bool  `json:"embarcacion"`
	Bioetanol   *bool  `json:"bioetanol"`
	Biodiesel   *bool  `json:"biodiesel"`
	Orden       *int64 `json:"orden"`
}
