package cmd

// Config carries every externally supplied setting. Values are read from
// the environment by cmd/app and parsed there; this struct is already typed.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr string

	RatesBaseURL    string
	RatesAPIKey     string
	DistanceBaseURL string
	DistanceAPIKey  string
	PaymentBaseURL  string
	PaymentAPIKey   string
	DocStoreBaseURL string
	DocStoreAPIKey  string

	// Storage policy: free warehouse days, then a per-day rate.
	StorageFreeDays  int
	StorageDailyRate float64

	// House fleet tariff used when the external rate service is down.
	HouseCarrierCode   string
	HouseCarrierName   string
	HouseServiceLevel  string
	HousePerPoundRate  float64
	HouseMinimumCharge float64
	HouseEstimatedDays int

	// Payment processor cut, used to gross up the processing surcharge so
	// the merchant nets the pre-fee amount.
	ProcessorPercent float64
	ProcessorFixed   float64
}
