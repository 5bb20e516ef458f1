package main

import (
	// stdlib
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	// internal
	"github.com/Robogera/hillclimb/pkg/config"

	// external
	mqtt "github.com/soypat/natiu-mqtt"
)

// Sends the report to an MQTT broker with QoS 0 and disconnects
func publish(
	ctx context.Context,
	parent_logger *slog.Logger,
	cfg config.PublishConfig,
	report Report,
) error {
	logger := parent_logger.With("coroutine", "publisher")

	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("%w: %w", ERR_CANT_PUBLISH, err)
	}

	client := mqtt.NewClient(
		mqtt.ClientConfig{
			Decoder: mqtt.DecoderNoAlloc{UserBuffer: make([]byte, 2048)},
			OnPub: func(pubHead mqtt.Header, varPub mqtt.VariablesPublish, r io.Reader) error {
				message, err := io.ReadAll(r)
				if err != nil {
					return err
				}
				logger.Debug("Recieved", "header", pubHead.String(), "message", message)
				return nil
			},
		})

	timeout := time.Second * time.Duration(cfg.TimeoutSec)
	dialer := net.Dialer{Timeout: timeout}
	connection, err := dialer.DialContext(ctx, "tcp", cfg.Address)
	if err != nil {
		return fmt.Errorf("%w: %w", ERR_CANT_PUBLISH, err)
	}
	defer connection.Close()

	connection_ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	vars := &mqtt.VariablesConnect{}
	vars.SetDefaultMQTT([]byte(cfg.ClientID))
	if err := client.Connect(connection_ctx, connection, vars); err != nil {
		return fmt.Errorf("%w: %w", ERR_CANT_PUBLISH, err)
	}
	defer client.Disconnect(errors.New("report sent"))

	flags, err := mqtt.NewPublishFlags(mqtt.QoS0, false, false)
	if err != nil {
		return fmt.Errorf("%w: %w", ERR_CANT_PUBLISH, err)
	}
	err = client.PublishPayload(flags, mqtt.VariablesPublish{
		TopicName: []byte(cfg.Topic),
	}, payload)
	if err != nil {
		return fmt.Errorf("%w: %w", ERR_CANT_PUBLISH, err)
	}
	logger.Info("Report published", "topic", cfg.Topic, "bytes", len(payload))
	return nil
}
