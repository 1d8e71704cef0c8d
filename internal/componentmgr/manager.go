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

package componentmgr

import (
	"context"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-common/pkg/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agritrace/batchledger/internal/confutil"
	"github.com/agritrace/batchledger/internal/custody"
	"github.com/agritrace/batchledger/internal/httpserver"
	"github.com/agritrace/batchledger/internal/ledger"
	"github.com/agritrace/batchledger/internal/metrics"
	"github.com/agritrace/batchledger/internal/msgs"
	"github.com/agritrace/batchledger/internal/persistence"
	"github.com/agritrace/batchledger/internal/rpcserver"
)

type ComponentManager interface {
	Init() error
	Start() error
	Stop()
	Persistence() persistence.Persistence
	Ledger() ledger.Ledger
	CustodyManager() custody.Manager
	Metrics() metrics.Metrics
	RPCServer() rpcserver.Server
	DebugServer() httpserver.DebugServer
}

type componentManager struct {
	bgCtx context.Context
	conf  *Config

	persistence    persistence.Persistence
	metrics        metrics.Metrics
	ledger         ledger.Ledger
	custodyManager custody.Manager
	rpcServer      rpcserver.Server
	debugServer    httpserver.DebugServer

	// keep track of everything we started
	started []stoppable
	opened  []closeable
}

// things that have a running component that is active in the background and hence "stops"
type stoppable interface {
	Stop()
}

// things that are services used in various places, but need to cleanly disconnect all connections and hence "close"
type closeable interface {
	Close()
}

func NewComponentManager(bgCtx context.Context, conf *Config) ComponentManager {
	if conf.Log.Level != nil {
		log.SetLevel(*conf.Log.Level)
	}
	return &componentManager{
		bgCtx: bgCtx,
		conf:  conf,
	}
}

func (cm *componentManager) Init() (err error) {

	cm.persistence, err = persistence.NewPersistence(cm.bgCtx, &cm.conf.DB)
	cm.addIfOpened(cm.persistence, err)
	if err != nil {
		return i18n.WrapError(cm.bgCtx, err, msgs.MsgComponentDBInitError)
	}

	cm.metrics = metrics.NewMetricsManager(cm.bgCtx)

	cm.ledger = ledger.NewLedger(cm.bgCtx, &cm.conf.Ledger, cm.persistence)
	cm.custodyManager = custody.NewManager(cm.bgCtx, &cm.conf.Custody, cm.ledger, cm.metrics)

	cm.rpcServer, err = rpcserver.NewServer(cm.bgCtx, &cm.conf.RPCServer)
	if err != nil {
		return i18n.WrapError(cm.bgCtx, err, msgs.MsgComponentRPCServerInitError)
	}
	cm.rpcServer.Register(custody.RPCModule(cm.custodyManager))

	if confutil.Bool(cm.conf.DebugServer.Enabled, false) {
		cm.debugServer, err = httpserver.NewDebugServer(cm.bgCtx, &cm.conf.DebugServer.Config)
		if err != nil {
			return i18n.WrapError(cm.bgCtx, err, msgs.MsgComponentDebugInitError)
		}
		cm.debugServer.Router().HandleFunc("/metrics",
			promhttp.HandlerFor(cm.metrics.Registry(), promhttp.HandlerOpts{}).ServeHTTP)
	}

	return nil
}

func (cm *componentManager) Start() (err error) {

	// the commit writer must be accepting work before anything can serve requests
	err = cm.ledger.Start()
	cm.addIfStarted(cm.ledger, err)
	if err != nil {
		return i18n.WrapError(cm.bgCtx, err, msgs.MsgComponentLedgerStartError)
	}

	if cm.debugServer != nil {
		err = cm.debugServer.Start()
		cm.addIfStarted(cm.debugServer, err)
		if err != nil {
			return err
		}
	}

	// start the RPC server last
	err = cm.rpcServer.Start()
	cm.addIfStarted(cm.rpcServer, err)
	return err
}

func (cm *componentManager) addIfStarted(c stoppable, err error) {
	if err == nil {
		cm.started = append(cm.started, c)
	}
}

func (cm *componentManager) addIfOpened(c closeable, err error) {
	if err == nil {
		cm.opened = append(cm.opened, c)
	}
}

func (cm *componentManager) Stop() {
	// stop all the stoppable things we started, in reverse order so the
	// RPC server quiesces before the commit writer drains
	for i := len(cm.started) - 1; i >= 0; i-- {
		cm.started[i].Stop()
	}
	// close all the closable things we opened
	for _, c := range cm.opened {
		c.Close()
	}
}

func (cm *componentManager) Persistence() persistence.Persistence {
	return cm.persistence
}

func (cm *componentManager) Ledger() ledger.Ledger {
	return cm.ledger
}

func (cm *componentManager) CustodyManager() custody.Manager {
	return cm.custodyManager
}

func (cm *componentManager) Metrics() metrics.Metrics {
	return cm.metrics
}

func (cm *componentManager) RPCServer() rpcserver.Server {
	return cm.rpcServer
}

func (cm *componentManager) DebugServer() httpserver.DebugServer {
	return cm.debugServer
}
