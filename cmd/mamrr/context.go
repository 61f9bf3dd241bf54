package main

import (
	"strings"
	"sync"
	"time"

	"mamrr/internal/config"
	"mamrr/internal/logging"
	"mamrr/internal/notify"
	"mamrr/internal/services/mamweb"
	"mamrr/internal/session"
	"mamrr/internal/workflow"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	coordinatorOnce sync.Once
	coordinator     *workflow.Coordinator
	coordinatorErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureCoordinator wires the session manager, notification queue, backend
// client, and logger together once per invocation.
func (c *commandContext) ensureCoordinator() (*workflow.Coordinator, error) {
	c.coordinatorOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.coordinatorErr = err
			return
		}

		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.coordinatorErr = err
			return
		}

		client, err := mamweb.New(cfg.Server.URL,
			mamweb.WithTimeout(time.Duration(cfg.Server.RequestTimeout)*time.Second))
		if err != nil {
			c.coordinatorErr = err
			return
		}

		manager, err := session.NewManager(session.NewFileStore(cfg.StatePath()))
		if err != nil {
			c.coordinatorErr = err
			return
		}

		queue := notify.NewQueue(time.Duration(cfg.Notifications.TTLMillis) * time.Millisecond)

		coordinator, err := workflow.New(client, manager, queue,
			workflow.WithLogger(logger),
			workflow.WithSessionValidation(cfg.Server.VerifySession))
		if err != nil {
			c.coordinatorErr = err
			return
		}
		c.coordinator = coordinator
	})
	return c.coordinator, c.coordinatorErr
}
