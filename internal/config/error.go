package config

import "errors"

var errNegativeRate = errors.New("rate must not be negative")
