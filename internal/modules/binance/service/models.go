package service

type exchangeInfoResp struct {
	Symbols []exchangeSymbol `json:"symbols"`
}

type exchangeSymbol struct {
	Symbol     string `json:"symbol"`
	Status     string `json:"status"`
	BaseAsset  string `json:"baseAsset"`
	QuoteAsset string `json:"quoteAsset"`
}

// индексы полей в строке /api/v3/klines
const (
	klineCloseIdx     = 4
	klineCloseTimeIdx = 6
)

// плечевые токены
var deniedSuffixes = []string{
	"UPUSDT", "DOWNUSDT", "BULLUSDT", "BEARUSDT",
	"3LUSDT", "3SUSDT", "5LUSDT", "5SUSDT",
}

// стейблкоины в паре
var deniedSubstrings = []string{"BUSD", "TUSD", "FDUSD", "USDC"}
