package orchestrator

import (
	"context"
	"io"
	"os"

	"artemisctl/internal/broker"
	"artemisctl/internal/config"
	"artemisctl/internal/consumer"
	"artemisctl/internal/provision"
	"artemisctl/pkg/logging"

	"github.com/google/uuid"
)

const subsystem = "Orchestrator"

// Step names, in the order Install runs them.
const (
	StepDownload          = "download"
	StepExtract           = "extract"
	StepCreateInstance    = "create-instance"
	StepConfigureBroker   = "configure-broker"
	StepConfigureConsumer = "configure-consumer"
	StepClean             = "clean"
)

// Observer is notified around each step.
type Observer interface {
	StepStarted(step string)
	StepFinished(step string, err error)
}

// Options holds the configuration for the orchestrator.
type Options struct {
	Config config.Config
	// Verbose forwards the output of "bin/artemis create" to Stdout and
	// Stderr, which default to the process's own.
	Verbose bool
	Stdout  io.Writer
	Stderr  io.Writer
	// Observer is optional.
	Observer Observer
}

// Result records where an install put things.
type Result struct {
	RunID        string `json:"runId"`
	ArchivePath  string `json:"archivePath"`
	ReleasePath  string `json:"releasePath"`
	InstancePath string `json:"instancePath"`
	// ConsumerConfig is empty when the consumer step was skipped.
	ConsumerConfig string `json:"consumerConfig,omitempty"`
}

// Orchestrator runs the provisioning flows for one configuration.
type Orchestrator struct {
	cfg         config.Config
	installer   *broker.Installer
	provisioner *broker.Provisioner
	observer    Observer
}

// New creates a new orchestrator.
func New(opts Options) *Orchestrator {
	var stdout, stderr io.Writer
	if opts.Verbose {
		stdout, stderr = opts.Stdout, opts.Stderr
		if stdout == nil {
			stdout = os.Stdout
		}
		if stderr == nil {
			stderr = os.Stderr
		}
	}

	return &Orchestrator{
		cfg:         opts.Config,
		installer:   broker.NewInstaller(broker.NewFetcher(opts.Config.DownloadTimeout)),
		provisioner: broker.NewProvisioner(stdout, stderr),
		observer:    opts.Observer,
	}
}

// Install brings the host to a configured broker instance, skipping every
// step whose outcome is already on disk.
func (o *Orchestrator) Install(ctx context.Context) (*Result, error) {
	res := &Result{RunID: o.beginRun()}
	defer logging.SetRunID("")

	cfg := o.cfg
	logging.Info(subsystem, "Installing artemis %s into %s", cfg.Version, cfg.InstallDir)

	err := o.step(StepDownload, func() error {
		url, err := broker.ArchiveURL(cfg.ArchiveURLTemplate, cfg.Origin, cfg.Version)
		if err != nil {
			return provision.Wrap(provision.KindDownload, cfg.Origin, err)
		}
		res.ArchivePath, err = o.installer.Download(ctx, url, cfg.InstallDir, cfg.Version)
		return err
	})
	if err != nil {
		return res, err
	}

	err = o.step(StepExtract, func() (err error) {
		res.ReleasePath, err = broker.Extract(cfg.InstallDir, res.ArchivePath)
		return err
	})
	if err != nil {
		return res, err
	}

	err = o.step(StepCreateInstance, func() (err error) {
		res.InstancePath, err = o.provisioner.CreateInstance(ctx, res.ReleasePath, cfg.BrokerRoot, cfg.BrokerName)
		return err
	})
	if err != nil {
		return res, err
	}

	err = o.step(StepConfigureBroker, func() error {
		return broker.UpdateBrokerConfig(res.InstancePath, cfg.BrokerConfig, cfg.BrokerDataDir)
	})
	if err != nil {
		return res, err
	}

	if cfg.CandlepinConf == "" {
		logging.Info(subsystem, "No consumer config set, skipping %s", StepConfigureConsumer)
	} else {
		err = o.step(StepConfigureConsumer, func() error {
			return consumer.Rewrite(cfg.CandlepinConf, broker.AcceptorURL)
		})
		if err != nil {
			return res, err
		}
		res.ConsumerConfig = cfg.CandlepinConf
	}

	logging.Info(subsystem, "Broker instance ready at %s", res.InstancePath)
	return res, nil
}

// Clean removes the broker root and the unpacked release. The cached
// archive is kept.
func (o *Orchestrator) Clean(ctx context.Context) error {
	o.beginRun()
	defer logging.SetRunID("")

	if err := ctx.Err(); err != nil {
		return provision.WithStep(StepClean, err)
	}
	return o.step(StepClean, func() error {
		return broker.Cleanup(o.cfg.InstallDir, o.cfg.Version, o.cfg.BrokerRoot)
	})
}

func (o *Orchestrator) beginRun() string {
	id := uuid.NewString()
	logging.SetRunID(id)
	logging.Debug(subsystem, "Starting run %s", id)
	return id
}

// step runs fn as the named step, notifying the observer and tagging any
// error with the step name.
func (o *Orchestrator) step(name string, fn func() error) error {
	if o.observer != nil {
		o.observer.StepStarted(name)
	}
	logging.Debug(subsystem, "Step %s started", name)

	err := provision.WithStep(name, fn())

	if o.observer != nil {
		o.observer.StepFinished(name, err)
	}
	if err != nil {
		logging.Error(subsystem, err, "Step %s failed", name)
		return err
	}
	logging.Debug(subsystem, "Step %s finished", name)
	return nil
}
