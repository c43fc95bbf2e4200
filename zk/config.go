package zk

import (
	"time"
)

type Config struct {
	ZkAddrs string
	Chroot  string
	Timeout time.Duration
}

func DefaultConfig(addrs, chroot string) *Config {
	return &Config{
		ZkAddrs: addrs,
		Chroot:  chroot,
		Timeout: time.Minute,
	}
}
