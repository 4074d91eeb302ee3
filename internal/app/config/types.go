package config

type (
	InternalConfig struct {
		App      App
		JWT      JWT
		Calendar Calendar
		Booking  Booking
	}

	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		Logger   Logger
		RabbitMQ RabbitMQ
	}

	App struct {
		Env                        string
		Port                       string
		Version                    string
		Address                    string
		EndpointPrefix             string
		MaxRequests                int
		ShutdownTimeoutInSeconds   int
		MaxTimeRequestsPerSeconds  int
		RequestBodyLimitInMegabyte int
	}

	JWT struct {
		Secret        string
		ExpTimeInHour int
	}

	// Calendar tunes the projection grid.
	Calendar struct {
		TickMinutes       int
		WindowStartClock  string
		WindowEndClock    string
		MaxRangeDays      int
		DefaultView       string
		DefaultRangeDays  int
	}

	// Booking tunes the write path.
	Booking struct {
		DayLockTTLInSeconds  int
		QueuePrefetch        int
		MaxBookingsPerMinute int
	}

	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
)
