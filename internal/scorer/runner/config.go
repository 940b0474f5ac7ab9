package runner

const DefaultWorkers = 1

type Config struct {
	// Workers bounds the number of strata evaluated concurrently.
	Workers int
}

func DefaultConfig() Config {
	return Config{Workers: DefaultWorkers}
}
