package geoportal

// Defaults applied while building a search payload. The upstream endpoint
// expects every key to be present, so absent criteria fields are filled in
// with these values.
const (
	DefaultStationType = "EESS"
	DefaultProductID   = "4" // Diesel A
	DefaultSaleType    = "P" // public sale
)

// Criteria holds the optional filters a caller may set for a station
// search. The zero value is a valid criteria that searches everything.
type Criteria struct {
	StationType        string
	ProvinceID         string
	MunicipalityID     string
	ProductID          string
	Brand              string
	EconomicalStations bool
	DiscountPlans      bool
	StartTime          string
	EndTime            string
	Street             string
	StreetNumber       string
	PostalCode         string
	SaleType           string
	ServiceType        *string
	OperatorID         string
	PlanName           string
	RecipientTypeID    *string
	Bounds             *Bounds
}

// Bounds is an optional bounding-box filter, expressed as strings the way
// the upstream endpoint expects them.
type Bounds struct {
	X0 string
	Y0 string
	X1 string
	Y1 string
}

// SearchPayload is the wire shape of a station search request. Field names
// and their order are fixed by the upstream endpoint; the order also fixes
// the canonical serialization the cache key hash is computed over.
type SearchPayload struct {
	TipoEstacion       string  `json:"tipoEstacion"`
	IDProvincia        string  `json:"idProvincia"`
	IDMunicipio        string  `json:"idMunicipio"`
	IDProducto         string  `json:"idProducto"`
	Rotulo             string  `json:"rotulo"`
	EESSEconomicas     bool    `json:"eessEconomicas"`
	ConPlanesDescuento bool    `json:"conPlanesDescuento"`
	HorarioInicial     string  `json:"horarioInicial"`
	HorarioFinal       string  `json:"horarioFinal"`
	Calle              string  `json:"calle"`
	Numero             string  `json:"numero"`
	CodPostal          string  `json:"codPostal"`
	TipoVenta          string  `json:"tipoVenta"`
	TipoServicio       *string `json:"tipoServicio"`
	IDOperador         string  `json:"idOperador"`
	NombrePlan         string  `json:"nombrePlan"`
	IDTipoDestinatario *string `json:"idTipoDestinatario"`
	X0                 string  `json:"x0"`
	Y0                 string  `json:"y0"`
	X1                 string  `json:"x1"`
	Y1                 string  `json:"y1"`
}

// BuildSearchPayload normalizes criteria into the upstream request shape.
// It is a pure function: two criteria that differ only in omitted-vs-default
// fields produce identical payloads.
func BuildSearchPayload(c Criteria) SearchPayload {
	p := SearchPayload{
		TipoEstacion:       c.StationType,
		IDProvincia:        c.ProvinceID,
		IDMunicipio:        c.MunicipalityID,
		IDProducto:         c.ProductID,
		Rotulo:             c.Brand,
		EESSEconomicas:     c.EconomicalStations,
		ConPlanesDescuento: c.DiscountPlans,
		HorarioInicial:     c.StartTime,
		HorarioFinal:       c.EndTime,
		Calle:              c.Street,
		Numero:             c.StreetNumber,
		CodPostal:          c.PostalCode,
		TipoVenta:          c.SaleType,
		TipoServicio:       c.ServiceType,
		IDOperador:         c.OperatorID,
		NombrePlan:         c.PlanName,
		IDTipoDestinatario: c.RecipientTypeID,
	}

	if p.TipoEstacion == "" {
		p.TipoEstacion = DefaultStationType
	}
	if p.IDProducto == "" {
		p.IDProducto = DefaultProductID
	}
	if p.TipoVenta == "" {
		p.TipoVenta = DefaultSaleType
	}
	if c.Bounds != nil {
		p.X0 = c.Bounds.X0
		p.Y0 = c.Bounds.Y0
		p.X1 = c.Bounds.X1
		p.Y1 = c.Bounds.Y1
	}

	return p
}
