package server

import "errors"

var errNoServersAreCreated = errors.New("no servers to create: empty listen address")
