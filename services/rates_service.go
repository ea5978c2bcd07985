package services

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Rate sources are third-party price APIs; everything here is I/O glue.
// The commission core never calls this package: orders carry a
// caller-supplied exchange rate and margin.

var cryptoIDs = map[string]string{
	"bitcoin":          "BTC",
	"ethereum":         "ETH",
	"tether":           "USDT",
	"tron":             "TRX",
	"ripple":           "XRP",
	"the-open-network": "TON",
	"usd-coin":         "USDC",
}

// Wallet/network variants quoted at the parent asset's rate.
var cryptoVariants = map[string][]string{
	"USDT": {"USDT-TRC20", "USDT-BEP20", "USDT-ERC20", "USDT-ARB", "USDT-TON", "USDT-MATIC"},
	"ETH":  {"ETH-ARB", "ETH-BEP20"},
	"USDC": {"USDC-ERC20", "USDC-SOL", "USDC-MATIC"},
}

var fiatVariants = map[string][]string{
	"USD": {"USD-REVOLUT", "USD-WISE", "USD-CARD"},
	"EUR": {"EUR-CARD", "EUR-REVOLUT", "EUR-WISE", "EUR-PAYSERA", "EUR-SEPA"},
	"KZT": {"KZT-KASPI", "KZT-HALYK", "KZT-JUSAN", "KZT-ALTYN", "KZT-FREEDOM"},
	"UAH": {"UAH-MONO", "UAH-PRIVAT", "UAH-ABANK", "UAH-PUMB", "UAH-IZI", "UAH-SENSE", "UAH-TRANSFER"},
}

var rubMethods = []string{
	"RUB-SBP", "RUB-TINKOFF", "RUB-VTB", "RUB-PSB", "RUB-SBER",
	"RUB-ALFA", "RUB-RAIF", "RUB-POST", "RUB-MTS", "RUB-GPB",
}

var (
	ratesCache    map[string]float64
	cacheMutex    sync.RWMutex
	lastFetchTime time.Time
)

const ratesCacheTTL = 60 * time.Second

var ratesClient = &http.Client{Timeout: 10 * time.Second}

// FetchRates returns the current RUB-quoted rate map, refreshing the
// in-process cache when it is older than a minute.
func FetchRates() (map[string]float64, error) {
	cacheMutex.RLock()
	if time.Since(lastFetchTime) < ratesCacheTTL && ratesCache != nil {
		defer cacheMutex.RUnlock()
		return ratesCache, nil
	}
	cacheMutex.RUnlock()

	return RefreshRates()
}

// RefreshRates bypasses the cache and pulls fresh rates from both sources.
func RefreshRates() (map[string]float64, error) {
	log.Println("Fetching fresh exchange rates from APIs...")

	crypto, err := fetchCryptoRates()
	if err != nil {
		return nil, err
	}
	fiat, err := fetchFiatRates()
	if err != nil {
		return nil, err
	}

	rates := make(map[string]float64, len(crypto)+len(fiat))
	for symbol, rate := range crypto {
		rates[symbol] = rate
	}
	for symbol, rate := range fiat {
		rates[symbol] = rate
	}

	cacheMutex.Lock()
	ratesCache = rates
	lastFetchTime = time.Now()
	cacheMutex.Unlock()
	log.Println("Successfully updated currency exchange rate cache.")

	return rates, nil
}

func fetchCryptoRates() (map[string]float64, error) {
	ids := make([]string, 0, len(cryptoIDs))
	for id := range cryptoIDs {
		ids = append(ids, id)
	}
	url := fmt.Sprintf("https://api.coingecko.com/api/v3/simple/price?ids=%s&vs_currencies=rub", strings.Join(ids, ","))

	resp, err := ratesClient.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var data map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}

	rates := make(map[string]float64)
	for coinID, symbol := range cryptoIDs {
		quote, ok := data[coinID]
		if !ok {
			continue
		}
		rate, ok := quote["rub"]
		if !ok {
			continue
		}
		rates[symbol] = rate
		for _, variant := range cryptoVariants[symbol] {
			rates[variant] = rate
		}
	}
	return rates, nil
}

type fiatRatesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

func fetchFiatRates() (map[string]float64, error) {
	resp, err := ratesClient.Get("https://api.exchangerate-api.com/v4/latest/RUB")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var data fiatRatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}

	rates := make(map[string]float64)
	for currency, variants := range fiatVariants {
		perRub, ok := data.Rates[currency]
		if !ok || perRub == 0 {
			continue
		}
		// The API quotes units of foreign currency per RUB; invert to RUB.
		rate := 1 / perRub
		for _, variant := range variants {
			rates[variant] = rate
		}
	}
	for _, method := range rubMethods {
		rates[method] = 1
	}
	return rates, nil
}
