package orchestrator

import (
	"fmt"
	"path/filepath"

	"artemisctl/internal/broker"
	"artemisctl/internal/consumer"
	"artemisctl/internal/provision"
)

// Checkpoint is one filesystem fact the install flow relies on.
type Checkpoint struct {
	Step string `json:"step"`
	Name string `json:"name"`
	Path string `json:"path"`
	Done bool   `json:"done"`
	// Detail explains a checkpoint that is neither plainly done nor missing.
	Detail string `json:"detail,omitempty"`
}

// Status checks the filesystem for every install checkpoint. It changes
// nothing.
func (o *Orchestrator) Status() []Checkpoint {
	cfg := o.cfg
	instance := broker.InstancePath(cfg.BrokerRoot, cfg.BrokerName)

	checkpoints := []Checkpoint{
		exists(StepDownload, "archive cached", filepath.Join(cfg.InstallDir, broker.ArchiveName(cfg.Version))),
		exists(StepExtract, "release extracted", broker.ReleaseDir(cfg.InstallDir, cfg.Version)),
		exists(StepCreateInstance, "instance created", instance),
		exists(StepConfigureBroker, "vendor config backed up", broker.BackupPath(instance)),
	}
	return append(checkpoints, consumerCheckpoint(cfg.CandlepinConf))
}

func exists(step, name, path string) Checkpoint {
	return Checkpoint{Step: step, Name: name, Path: path, Done: provision.Exists(path)}
}

func consumerCheckpoint(path string) Checkpoint {
	cp := Checkpoint{Step: StepConfigureConsumer, Name: "consumer points at broker", Path: path}
	if path == "" {
		cp.Detail = "skipped"
		return cp
	}
	if !provision.Exists(path) {
		return cp
	}

	values, err := consumer.Lookup(path)
	if err != nil {
		cp.Detail = err.Error()
		return cp
	}

	embedded, url := values[consumer.EmbeddedKey], values[consumer.BrokerURLKey]
	cp.Done = embedded == "false" && url == broker.AcceptorURL
	if !cp.Done {
		cp.Detail = fmt.Sprintf("embedded=%q broker_url=%q", embedded, url)
	}
	return cp
}
