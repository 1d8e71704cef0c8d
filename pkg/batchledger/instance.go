// Copyright © 2024 AgriTrace Contributors
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package batchledger

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"

	"github.com/hyperledger/firefly-common/pkg/log"

	"github.com/agritrace/batchledger/internal/componentmgr"
	"github.com/agritrace/batchledger/internal/confutil"
)

var componentManagerFactory = componentmgr.NewComponentManager

// running ensures only one instance per process
var running atomic.Pointer[instance]

type instance struct {
	configFile string

	ctx       context.Context
	cancelCtx context.CancelFunc
	signals   chan os.Signal
	stopped   atomic.Bool
	done      chan struct{}
}

type RC int

const (
	RC_OK   RC = 0
	RC_FAIL RC = 1
)

// Run starts the ledger service from the supplied config file, and blocks
// until the process is signalled (or Stop is called from another routine).
func Run(configFile string) RC {
	i := newInstance(configFile)
	if !running.CompareAndSwap(nil, i) {
		log.L(i.ctx).Errorf("An instance is already running in this process")
		return RC_FAIL
	}
	return i.run()
}

// Stop requests a running instance to shut down, and waits for it to finish.
func Stop() {
	if i := running.Load(); i != nil {
		i.stop()
	}
}

func newInstance(configFile string) *instance {
	i := &instance{
		configFile: configFile,
		signals:    make(chan os.Signal, 1),
		done:       make(chan struct{}),
	}
	i.ctx, i.cancelCtx = context.WithCancel(log.WithLogField(context.Background(), "pid", strconv.Itoa(os.Getpid())))
	return i
}

func (i *instance) signalHandler() {
	signal.Notify(i.signals, os.Interrupt, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	sig := <-i.signals
	if sig != nil {
		log.L(i.ctx).Infof("Stopping due to signal %s", sig)
		i.stop()
	}
}

func (i *instance) run() RC {
	defer func() {
		close(i.done)
		running.Store(nil)
	}()
	go i.signalHandler()

	var conf componentmgr.Config
	if err := confutil.ReadAndParseYAMLFile(i.ctx, i.configFile, &conf); err != nil {
		log.L(i.ctx).Error(err.Error())
		return RC_FAIL
	}

	cm := componentManagerFactory(i.ctx, &conf)
	// From this point need to ensure we stop the component manager
	defer cm.Stop()

	// Start it up
	err := cm.Init()
	if err == nil {
		err = cm.Start()
	}
	if err != nil {
		log.L(i.ctx).Error(err.Error())
		return RC_FAIL
	}

	log.L(i.ctx).Infof("Batch custody ledger started")

	// We're started... we just wait for the request to stop
	<-i.ctx.Done()

	return RC_OK
}

func (i *instance) stop() {
	if i.stopped.CompareAndSwap(false, true) {
		i.cancelCtx()
		close(i.signals)
		<-i.done
	}
}
