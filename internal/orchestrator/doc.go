// Package orchestrator composes the broker provisioning steps into the
// install, clean and status flows of artemisctl.
//
// # Install
//
// Install runs these steps in order and stops at the first failure:
//
//  1. download: fetch the release archive into the install directory,
//     unless it is already cached
//  2. extract: unpack the archive, unless the release directory exists
//  3. create-instance: run "bin/artemis create", unless the instance exists
//  4. configure-broker: back up the generated broker.xml once, install the
//     replacement template and patch it for this host
//  5. configure-consumer: point the consumer config at the broker's
//     acceptor; skipped when no consumer config is configured
//
// The returned error is a *provision.Error whose Step names the failing step.
//
// # State
//
// There is no state file. Every "already done?" decision is an existence
// check on the filesystem, which is also what Status reports, one
// Checkpoint per step. Running Install again after a success or a partial
// failure resumes where the filesystem says it left off.
//
// # Progress
//
// An optional Observer is told when each step starts and finishes. Each run
// gets a UUID that is attached to every log line written during the run.
package orchestrator
