package kafka

import "time"

// ProducerConfig holds writer settings. Zero fields take the defaults applied by NewProducer.
type ProducerConfig struct {
	Brokers      []string      `yaml:"brokers"`
	RequiredAcks int           `yaml:"required_acks" default:"1"` // -1 = all
	Compression  string        `yaml:"compression" default:"snappy"`
	MaxAttempts  int           `yaml:"max_attempts" default:"3"`
	WriteTimeout time.Duration `yaml:"write_timeout" default:"5s"`
	// Dashboard events are sparse, keep batches short.
	BatchTimeout time.Duration `yaml:"batch_timeout" default:"10ms"`
	Async        bool          `yaml:"async"`
	// HashByKey routes messages with the same key to the same partition.
	HashByKey bool `yaml:"hash_by_key" default:"true"`
}

func (c ProducerConfig) withDefaults() ProducerConfig {
	if c.Compression == "" {
		c.Compression = "snappy"
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 5 * time.Second
	}
	if c.BatchTimeout <= 0 {
		c.BatchTimeout = 10 * time.Millisecond
	}
	return c
}
