// Package resource describe los módulos de negocio de la consola: nombre visible,
// ruta de la consola, endpoint del API e ícono. Es la capa "interface" de cada módulo;
// acciones, store y vistas se construyen a partir de estos metadatos.
package resource

// Metadata datos estáticos de un módulo.
type Metadata struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Route    string `json:"route"`    // ruta en la consola (/api/<route>)
	Endpoint string `json:"endpoint"` // ruta en el API de negocio
	Icon     string `json:"icon"`
	ReadOnly bool   `json:"read_only"` // sin alta, edición ni borrado genéricos
}

// Claves de los módulos.
const (
	Box                = "box"
	BoxShift           = "box-shift"
	BoxMovement        = "box-movement"
	Client             = "client"
	CreditNote         = "credit-note"
	PurchaseCreditNote = "purchase-credit-note"
	PriceList          = "price-list"
	WarehouseDocument  = "warehouse-document"
	Kardex             = "kardex"
	ValuatedInventory  = "valuated-inventory"
	Motive             = "motive"
	Warehouse          = "warehouse"
	Product            = "product"
	Sale               = "sale"
	Purchase           = "purchase"
)

var registry = []Metadata{
	{Key: Box, Name: "Cajas", Route: "boxes", Endpoint: "/box", Icon: "cash-register"},
	{Key: BoxShift, Name: "Turnos de caja", Route: "box-shifts", Endpoint: "/boxshift", Icon: "clock", ReadOnly: true},
	{Key: BoxMovement, Name: "Movimientos de caja", Route: "box-movements", Endpoint: "/boxmovement", Icon: "arrows-exchange"},
	{Key: Client, Name: "Clientes", Route: "clients", Endpoint: "/client", Icon: "users"},
	{Key: CreditNote, Name: "Notas de crédito", Route: "credit-notes", Endpoint: "/creditnote", Icon: "receipt-refund"},
	{Key: PurchaseCreditNote, Name: "Notas de crédito de compra", Route: "purchase-credit-notes", Endpoint: "/purchasecreditnote", Icon: "receipt-refund"},
	{Key: PriceList, Name: "Listas de precios", Route: "price-lists", Endpoint: "/pricelist", Icon: "tags"},
	{Key: WarehouseDocument, Name: "Documentos de almacén", Route: "warehouse-documents", Endpoint: "/warehouse-document", Icon: "file-invoice"},
	{Key: Kardex, Name: "Kardex", Route: "kardex", Endpoint: "/kardex", Icon: "report", ReadOnly: true},
	{Key: ValuatedInventory, Name: "Inventario valorizado", Route: "valuated-inventory", Endpoint: "/kardex/valuated", Icon: "report-money", ReadOnly: true},
	{Key: Motive, Name: "Motivos", Route: "motives", Endpoint: "/motive", Icon: "list", ReadOnly: true},
	{Key: Warehouse, Name: "Almacenes", Route: "warehouses", Endpoint: "/warehouse", Icon: "building-warehouse", ReadOnly: true},
	{Key: Product, Name: "Productos", Route: "products", Endpoint: "/product", Icon: "package", ReadOnly: true},
	{Key: Sale, Name: "Ventas", Route: "sales", Endpoint: "/sale", Icon: "shopping-cart", ReadOnly: true},
	{Key: Purchase, Name: "Compras", Route: "purchases", Endpoint: "/purchase", Icon: "truck", ReadOnly: true},
}

var byKey = func() map[string]Metadata {
	m := make(map[string]Metadata, len(registry))
	for _, md := range registry {
		m[md.Key] = md
	}
	return m
}()

// Lookup devuelve los metadatos de un módulo por clave.
func Lookup(key string) (Metadata, bool) {
	md, ok := byKey[key]
	return md, ok
}

// MustLookup como Lookup pero entra en pánico si la clave no existe (solo en el arranque).
func MustLookup(key string) Metadata {
	md, ok := byKey[key]
	if !ok {
		panic("resource: módulo desconocido " + key)
	}
	return md
}

// All devuelve todos los módulos en orden de menú.
func All() []Metadata {
	out := make([]Metadata, len(registry))
	copy(out, registry)
	return out
}
