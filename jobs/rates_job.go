package jobs

import (
	"log"
	"time"

	"github.com/dkoval85/bitchange_backend/services"
	"github.com/dkoval85/bitchange_backend/websocket"
)

// RefreshExchangeRates re-pulls the rate sources and pushes the fresh
// snapshot to websocket subscribers.
func RefreshExchangeRates() {
	log.Println("Running job: RefreshExchangeRates...")

	rates, err := services.RefreshRates()
	if err != nil {
		log.Printf("Error refreshing exchange rates: %v", err)
		return
	}

	websocket.Broadcast <- websocket.RatesSnapshot{
		Rates:     rates,
		Timestamp: time.Now().Unix(),
	}
}
