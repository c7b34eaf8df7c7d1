package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// OrderAutoComplete selects the delivery-completion policy: when true a
	// completed delivery also completes its order.
	OrderAutoComplete bool
}
