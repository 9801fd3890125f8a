package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	fullykiosk "go-fullykiosk"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

var Flags = []cli.Flag{
	FlagLogLevel,
	FlagLogWriter,
	FlagConfig,
	FlagHost,
	FlagPort,
	FlagPassword,
	FlagUseMQTT,
}

func main() {
	var logger zerolog.Logger

	app := cli.App{
		Name:    "fullyctl",
		Usage:   "control a fully kiosk browser device and watch its events",
		Version: "v0.1.0",
		Flags:   Flags,
		Before: func(ctx *cli.Context) error {
			var logWriter io.Writer
			if ctx.String(FlagLogWriter.Name) == "console" {
				logWriter = zerolog.ConsoleWriter{
					Out:        os.Stderr,
					TimeFormat: time.RFC3339Nano,
				}
			} else if ctx.String(FlagLogWriter.Name) == "json" {
				logWriter = os.Stderr
			}

			logger = zerolog.New(logWriter).With().Timestamp().
				Str("service", "fullyctl").
				Logger()

			level, err := zerolog.ParseLevel(ctx.String(FlagLogLevel.Name))
			if err != nil {
				return err
			}

			zerolog.SetGlobalLevel(level)

			return nil
		},
		Action: func(ctx *cli.Context) error {
			return watch(ctx, logger)
		},
		Commands: []*cli.Command{
			{
				Name:  "watch",
				Usage: "start the client and log every dispatched event",
				Action: func(ctx *cli.Context) error {
					return watch(ctx, logger)
				},
			},
			{
				Name:  "info",
				Usage: "fetch and print the device info document",
				Action: func(ctx *cli.Context) error {
					client, err := newClient(ctx, logger, false)
					if err != nil {
						return err
					}
					info, err := client.GetDeviceInfo(ctx.Context)
					if err != nil {
						return err
					}
					out, err := json.MarshalIndent(info, "", "  ")
					if err != nil {
						return err
					}
					fmt.Println(string(out))
					return nil
				},
			},
			{
				Name:  "screen",
				Usage: "turn the device screen on or off",
				Subcommands: []*cli.Command{
					{
						Name: "on",
						Action: func(ctx *cli.Context) error {
							client, err := newClient(ctx, logger, false)
							if err != nil {
								return err
							}
							return client.ScreenOn(ctx.Context)
						},
					},
					{
						Name: "off",
						Action: func(ctx *cli.Context) error {
							client, err := newClient(ctx, logger, false)
							if err != nil {
								return err
							}
							return client.ScreenOff(ctx.Context)
						},
					},
				},
			},
			{
				Name:      "load-url",
				Usage:     "load a url on the device",
				ArgsUsage: "<url>",
				Action: func(ctx *cli.Context) error {
					if ctx.Args().Len() != 1 {
						return fmt.Errorf("expected exactly one url argument")
					}
					client, err := newClient(ctx, logger, false)
					if err != nil {
						return err
					}
					return client.LoadURL(ctx.Context, ctx.Args().First())
				},
			},
		},
		Authors: []*cli.Author{
			{
				Name: "fullyctl authors",
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Err(err).Msg("terminated")
	}
}

func newClient(ctx *cli.Context, logger zerolog.Logger, useMQTT bool) (*fullykiosk.Client, error) {
	host, port, password, flagMQTT, err := ResolveSettings(ctx)
	if err != nil {
		return nil, err
	}

	return fullykiosk.NewClient(fullykiosk.ClientParams{
		Host:     host,
		Port:     port,
		Password: password,
		UseMQTT:  useMQTT && flagMQTT,
		OnEvent: func(event string) {
			logger.Info().Str("event", event).Msg("device event")
		},
		Log: logger.With().Str("module", "client").Logger(),
	})
}

func watch(ctx *cli.Context, logger zerolog.Logger) error {
	logger.Info().Msg("starting...")

	client, err := newClient(ctx, logger, true)
	if err != nil {
		return err
	}

	appCtx, cancel := context.WithCancel(logger.WithContext(ctx.Context))
	defer cancel()
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

		<-c

		logger.Warn().Msg("interrupt signal received")
		cancel()
	}()

	if err := client.Start(appCtx); err != nil {
		return err
	}

	info := client.DeviceInfo()
	logger.Info().
		Str("device_id", info.String("deviceID")).
		Str("ip4", info.String("ip4")).
		Msg("connected to device")

	<-appCtx.Done()

	logger.Info().Msg("terminating...")
	return client.Stop()
}
