/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/davecgh/go-spew/spew"
	"github.com/korolevchain/sequencer/state"
	"github.com/korolevchain/sequencer/storage"
	"github.com/korolevchain/sequencer/txpool"
	"github.com/op/go-logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var log = logging.MustGetLogger("cmd")

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start pool",
	Long:  "Is used to start the transaction pool service",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		store, err := storage.NewStorage(viper.GetString("Pool.DataDir"), nil)
		if err != nil {
			log.Fatal("Can't open storage", err)
		}
		defer store.Close()

		var provider *state.InMemoryProvider
		if seedPath := viper.GetString("Pool.SeedPath"); seedPath != "" {
			provider = state.NewInMemoryProvider(state.SeedFromFile(seedPath))
		} else {
			provider = state.NewInMemoryProvider(nil)
		}

		cfg := txpool.Config{
			Capacity:  viper.GetInt("Pool.Capacity"),
			PriceBump: uint64(viper.GetInt("Pool.PriceBump")),
		}

		registry := prometheus.NewRegistry()
		pool := txpool.NewTxPool(
			cfg,
			txpool.NewStatefulValidator(provider),
			txpool.FeePrioritizer{},
			provider,
			txpool.NewMetrics(registry),
		)
		pool.AttachJournal(ctx, store)

		if addr := viper.GetString("Metrics.Addr"); addr != "" {
			go func() {
				http.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
				if err := http.ListenAndServe(addr, nil); err != nil {
					log.Error("Metrics endpoint failed", err)
				}
			}()
		}

		log.Infof("Pool started, capacity %v", cfg.Capacity)

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop

		if viper.GetBool("Pool.DumpOnExit") {
			spew.Dump(pool.Dump())
		}
		log.Info("Stopping pool")
	},
}

func init() {
	rootCmd.AddCommand(startCmd)

	startCmd.PersistentFlags().StringP("metrics.addr", "e", viper.GetString("metrics.addr"), "Serves prometheus metrics on this address when set")
	startCmd.PersistentFlags().StringP("seed", "s", viper.GetString("pool.SeedPath"), "Path to the account seed file")

	if err := viper.BindPFlag("Metrics.Addr", startCmd.PersistentFlags().Lookup("metrics.addr")); err != nil {
		println(err.Error())
	}
	if err := viper.BindEnv("Metrics.Addr", "KRLV_METRICS"); err != nil {
		println(err.Error())
	}
	if err := viper.BindPFlag("Pool.SeedPath", startCmd.PersistentFlags().Lookup("seed")); err != nil {
		println(err.Error())
	}
	if err := viper.BindEnv("Pool.SeedPath", "KRLV_SEED"); err != nil {
		println(err.Error())
	}

	viper.SetDefault("Pool.Capacity", txpool.DefaultCapacity)
	viper.SetDefault("Pool.PriceBump", txpool.DefaultPriceBump)
}
