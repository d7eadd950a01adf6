package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sandvall/katalog-grid/pkg/common"
	"github.com/sandvall/katalog-grid/pkg/grid"
	"github.com/sandvall/katalog-grid/pkg/messaging"
	"github.com/sandvall/katalog-grid/pkg/server"
	"github.com/sandvall/katalog-grid/pkg/sorting"
	"github.com/sandvall/katalog-grid/pkg/storage"
	"github.com/sandvall/katalog-grid/pkg/tracking"
	"github.com/sandvall/katalog-grid/pkg/types"
)

var enableProfiling = flag.Bool("profiling", true, "enable profiling endpoints")
var rabbitVHost = os.Getenv("RABBIT_HOST")
var rabbitUrl = os.Getenv("RABBIT_URL")
var rabbitPrefix = envOrDefault("RABBIT_PREFIX", "katalog")
var redisUrl = os.Getenv("REDIS_URL")
var redisPassword = os.Getenv("REDIS_PASSWORD")
var dataFolder = envOrDefault("DATA_FOLDER", "data")
var listenAddress = ":8080"
var debugAddress = ":8081"

func envOrDefault(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

var driverColumns = []types.ColumnDescriptor{
	{Key: types.ColumnSector, Title: "Sector", Sortable: true, Filterable: true},
	{Key: types.ColumnDomain, Title: "Domain", Sortable: true, Filterable: true},
	{Key: types.ColumnCountry, Title: "Country", Sortable: true, Filterable: true},
}

func gridColumns(kind types.GridKind, extra ...types.ColumnDescriptor) []types.ColumnDescriptor {
	columns := []types.ColumnDescriptor{
		{Key: "name", Title: "Name", Sortable: true, Filterable: true},
	}
	for _, field := range kind.HierarchyFields() {
		columns = append(columns, types.ColumnDescriptor{Key: field, Title: field, Sortable: true, Filterable: true})
	}
	columns = append(columns, driverColumns...)
	columns = append(columns, extra...)
	return columns
}

var grids = map[types.GridKind]*grid.Index{
	types.GridVariables: grid.NewIndex(types.GridVariables, gridColumns(types.GridVariables,
		types.ColumnDescriptor{Key: "unit", Title: "Unit", Sortable: true, Filterable: true},
		types.ColumnDescriptor{Key: "status", Title: "Status", Sortable: true, Filterable: true},
	)),
	types.GridObjects: grid.NewIndex(types.GridObjects, gridColumns(types.GridObjects,
		types.ColumnDescriptor{Key: "status", Title: "Status", Sortable: true, Filterable: true},
	)),
	types.GridLists: grid.NewIndex(types.GridLists, gridColumns(types.GridLists)),
	types.GridMetadata: grid.NewIndex(types.GridMetadata, gridColumns(types.GridMetadata,
		types.ColumnDescriptor{Key: "source", Title: "Source", Sortable: true, Filterable: true},
		types.ColumnDescriptor{Key: "updatedAt", Title: "Updated", Sortable: true, Filterable: false},
	)),
}

var db = storage.NewDiskStorage(dataFolder)

var srv = server.WebServer{
	Grids:         grids,
	Db:            db,
	ListenAddress: listenAddress,
}

var done = false

func init() {
	flag.Parse()

	if redisUrl == "" {
		log.Fatalf("No redis url provided")
	}
	srv.Order = sorting.NewOrderStore(redisUrl, redisPassword, 0)
	srv.ConfigSaves = common.NewSaveQueue(saveConfigs, 16, 2*time.Second)
}

func saveConfigs(items []server.ConfigSave) {
	ctx := context.Background()
	for _, item := range items {
		if err := db.SaveGridConfig(item.GridId, item.Config); err != nil {
			log.Printf("Failed to save grid config %s to disk: %v", item.GridId, err)
		}
		if srv.Order == nil {
			continue
		}
		if err := srv.Order.SaveGridConfig(ctx, item.GridId, item.Config); err != nil {
			log.Printf("Failed to mirror grid config %s: %v", item.GridId, err)
		}
	}
}

// catalogChanges feeds rabbit change messages into the grid indexes.
type catalogChanges struct{}

func (c *catalogChanges) OnRowsUpserted(change messaging.RowsUpserted) {
	g, ok := grids[change.Kind]
	if !ok {
		log.Printf("Rows upserted for unknown grid kind %s", change.Kind)
		return
	}
	for _, row := range change.Rows {
		storage.NormalizeRow(row)
	}
	g.UpsertRows(change.Rows...)
	tracking.TotalRows.WithLabelValues(string(change.Kind)).Set(float64(g.Len()))
}

func (c *catalogChanges) OnRowsDeleted(change messaging.RowsDeleted) {
	g, ok := grids[change.Kind]
	if !ok {
		return
	}
	for _, id := range change.Ids {
		g.DeleteRow(id)
	}
	tracking.TotalRows.WithLabelValues(string(change.Kind)).Set(float64(g.Len()))
}

func (c *catalogChanges) OnDriverValueDeleted(change messaging.DriverValueDeleted) {
	for kind, g := range grids {
		affected := g.MarkDriverValueDeleted(change.Driver, change.Value)
		if affected != nil && !affected.IsEmpty() {
			log.Printf("Driver value %s/%s deleted, %d rows affected in %s", change.Driver, change.Value, affected.Len(), kind)
		}
	}
	tracking.AffectedEvents.Inc()
}

func (c *catalogChanges) OnOrderChanged(change messaging.OrderChanged) {
	// the order store reloads itself over redis pub/sub, nothing to do
	log.Printf("Predefined order changed by %s", change.ChangedBy)
}

func loadGrids(wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		for kind, g := range grids {
			count := 0
			err := db.LoadRows(kind, func(row *types.DataRow) {
				g.UpsertRows(row)
				count++
			})
			if err != nil {
				log.Printf("Failed to load %s rows: %v", kind, err)
				continue
			}
			tracking.TotalRows.WithLabelValues(string(kind)).Set(float64(g.Len()))
			log.Printf("Loaded %d %s rows", count, kind)
		}
		done = true
	}()
}

func saveSnapshots(ctx context.Context) error {
	for kind, g := range grids {
		rows := make([]*types.DataRow, 0, g.Len())
		for _, row := range g.Rows() {
			if dataRow, ok := row.(*types.DataRow); ok {
				rows = append(rows, dataRow)
			}
		}
		if err := db.SaveRows(kind, rows); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	wg := sync.WaitGroup{}
	loadGrids(&wg)

	ctx := context.Background()
	if err := srv.Order.Initialize(ctx); err != nil {
		log.Fatalf("Failed to initialize order store: %v", err)
	}
	if srv.Order.GetOrder() == nil {
		// cold redis, seed from the disk copy if one exists
		if order, err := db.LoadOrder(); err == nil && order != nil {
			if err := srv.Order.SaveOrder(ctx, order); err != nil {
				log.Printf("Failed to seed order store from disk: %v", err)
			}
		}
	}

	if rabbitUrl != "" {
		conn, err := messaging.Listen(messaging.RabbitConfig{
			Url:    rabbitUrl,
			VHost:  rabbitVHost,
			Prefix: rabbitPrefix,
		}, &catalogChanges{})
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer conn.Close()
		log.Printf("Listening for catalog changes on %s", rabbitUrl)
	}

	go func() {
		debugMux := http.NewServeMux()
		debugMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			if !done {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("not ready"))
				return
			}
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
		debugMux.Handle("/metrics", promhttp.Handler())
		log.Printf("Starting debug server %v", debugAddress)
		log.Fatal(http.ListenAndServe(debugAddress, debugMux))
	}()

	log.Println("Waiting for grids to load...")
	wg.Wait()
	log.Println("Starting api")

	mux := http.NewServeMux()
	mux.Handle("/admin/", http.StripPrefix("/admin", srv.AdminHandler()))
	mux.Handle("/api/", http.StripPrefix("/api", srv.Handler(*enableProfiling)))

	timeouts := common.LoadTimeoutConfig(common.TimeoutConfig{
		ReadHeader: 5 * time.Second,
		Read:       30 * time.Second,
		Write:      30 * time.Second,
		Idle:       120 * time.Second,
		Shutdown:   20 * time.Second,
		Hook:       10 * time.Second,
	})
	httpServer := common.NewServerWithTimeouts(&http.Server{
		Addr:    listenAddress,
		Handler: mux,
	}, timeouts)

	common.RunServerWithShutdown(httpServer, "katalog-grid", timeouts.Shutdown, timeouts.Hook,
		func(ctx context.Context) error {
			srv.ConfigSaves.Close()
			return nil
		},
		saveSnapshots,
		func(ctx context.Context) error {
			return srv.Order.Close()
		},
	)
}
