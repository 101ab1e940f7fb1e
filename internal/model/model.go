package model

type RoomID string

const EmptyRoomID RoomID = ""

// Symbol is one of the fixed weather icons a participant can pick.
type Symbol string

const (
	SymbolSun    Symbol = "sun"
	SymbolPartly Symbol = "partly"
	SymbolCloud  Symbol = "cloud"
	SymbolRain   Symbol = "rain"
	SymbolStorm  Symbol = "storm"
)

// Catalog returns the symbol set in its stable wire order.
func Catalog() []Symbol {
	return []Symbol{SymbolSun, SymbolPartly, SymbolCloud, SymbolRain, SymbolStorm}
}

// Token identifies one participant within a room. Clients mint it once
// and present it on every call.
type Token string

const EmptyToken Token = ""
