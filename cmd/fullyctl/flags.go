package main

import "github.com/urfave/cli/v2"

var FlagLogLevel = &cli.StringFlag{
	Name:     "log-level",
	EnvVars:  []string{"LOG_LEVEL"},
	Value:    "info",
	Required: false,
}

var FlagLogWriter = &cli.StringFlag{
	Name:     "log-writer",
	EnvVars:  []string{"LOG_WRITER"},
	Value:    "console",
	Required: false,
}

var FlagConfig = &cli.StringFlag{
	Name:     "config",
	Usage:    "path to a yaml config file supplying defaults",
	EnvVars:  []string{"FULLY_CONFIG"},
	Required: false,
}

var FlagHost = &cli.StringFlag{
	Name:     "host",
	Usage:    "kiosk device address",
	EnvVars:  []string{"FULLY_HOST"},
	Required: false,
}

var FlagPort = &cli.IntFlag{
	Name:     "port",
	Usage:    "remote admin port",
	EnvVars:  []string{"FULLY_PORT"},
	Value:    2323,
	Required: false,
}

var FlagPassword = &cli.StringFlag{
	Name:     "password",
	Usage:    "remote admin password",
	EnvVars:  []string{"FULLY_PASSWORD"},
	Required: false,
}

var FlagUseMQTT = &cli.BoolFlag{
	Name:     "use-mqtt",
	Usage:    "listen for events over mqtt when the device has it enabled",
	EnvVars:  []string{"FULLY_USE_MQTT"},
	Value:    true,
	Required: false,
}
