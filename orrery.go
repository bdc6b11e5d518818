// Package orrery is a small web dashboard over a static table of
// exoplanet discovery records.
//
// Usage:
//
//	import "github.com/orrery-org/orrery/dataset"
//	import "github.com/orrery-org/orrery/web"
//
//	provider := dataset.NewProvider("")
//	if err := provider.Load(); err != nil {
//	    log.Fatalf("dataset load failed: %v", err)
//	}
//	http.ListenAndServe(addr, web.NewServer(provider).Handler())
//
// The dataset is loaded exactly once at startup and is read-only for the
// lifetime of the process. Five fixed report pipelines (aggregation plus
// one chart each) live in the report package; the generic column
// selection/filter/export engine lives in the engine package. All chart
// output is a library-agnostic ChartSpec rendered either as an embeddable
// plotly fragment or a server-side PNG.
package orrery
