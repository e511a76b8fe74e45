package commands

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/celestiaorg/zkblobstream/gateway"
	"github.com/celestiaorg/zkblobstream/light"
	lhttp "github.com/celestiaorg/zkblobstream/light/provider/http"
)

// StartCmd runs the auto syncer: it polls the tracked chain's head and
// submits skip requests to close the gap, logging the advance events that
// off-chain relayers consume.
var StartCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the light client auto syncer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		addr, err := st.GatewayAddress()
		if err != nil {
			return err
		}
		if addr == "" {
			return fmt.Errorf("no gateway address configured; run 'gateway set' first")
		}

		// Until a remote gateway transport exists, requests are queued on an
		// in-process gateway; the advance-requested events below are the
		// surface an external prover watches.
		gw := gateway.NewLocal(addr)

		client := light.NewClient(st, gw,
			light.Logger(logger.With("module", "light")),
			light.WithMetrics(light.PrometheusMetrics("zkblobstream")),
			light.RequestFee(cfg.RequestFee),
		)
		gw.SetHandler(client)

		if cfg.PrometheusListenAddr != "" {
			go func() {
				mux := http.NewServeMux()
				mux.Handle("/metrics", promhttp.Handler())
				if err := http.ListenAndServe(cfg.PrometheusListenAddr, mux); err != nil {
					logger.Error("prometheus server failed", "err", err)
				}
			}()
		}

		as := light.NewAutoSync(client, lhttp.New(cfg.ChainRPC), cfg.SyncInterval)
		as.SetLogger(logger.With("module", "autosync"))
		if err := as.Start(); err != nil {
			return err
		}

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs

		return as.Stop()
	},
}
