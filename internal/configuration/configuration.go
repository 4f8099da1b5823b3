package configuration

import (
	"fmt"
)

const (
	SourceMemory  = "memory"
	SourceSpanner = "spanner"
)

type Configuration struct {
	HttpAddr   string `usage:"HTTP address"`
	GrpcAddr   string `usage:"gRPC address"`
	Source     string `usage:"record source: memory or spanner"`
	SpannerDB  string `usage:"Spanner database path, projects/<p>/instances/<i>/databases/<d>"`
	PageSize   int    `usage:"rows per grid page, 0 shows all"`
	SeedDemo   bool   `usage:"populate an empty memory source with demo products"`
	ShowConfig bool   `usage:"print config"`
}

func Default() Configuration {
	return Configuration{
		HttpAddr:  ":8080",
		GrpcAddr:  ":9090",
		Source:    SourceMemory,
		SpannerDB: "projects/test-project/instances/dev-instance/databases/product-grid-db",
		PageSize:  5,
		SeedDemo:  true,
	}
}

// Validate rejects settings the server cannot start with.
func (c Configuration) Validate() error {
	switch c.Source {
	case SourceMemory:
	case SourceSpanner:
		if c.SpannerDB == "" {
			return fmt.Errorf("source %q needs a Spanner database path", c.Source)
		}
	default:
		return fmt.Errorf("unknown source %q, want %q or %q", c.Source, SourceMemory, SourceSpanner)
	}
	if c.PageSize < 0 {
		return fmt.Errorf("page size must not be negative, got %d", c.PageSize)
	}
	return nil
}
