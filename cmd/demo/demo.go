// Command demo seeds the configured store with the sample collections shown
// by `daybook ui --demo` and prints what the store now holds.
package main

import (
	"context"
	"fmt"
	"log"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/printers"
	"tableflip.dev/daybook/pkg/record"
	"tableflip.dev/daybook/pkg/runner/ui"
	"tableflip.dev/daybook/pkg/store"
)

func main() {
	ctx := context.Background()

	settings, err := store.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	p, err := store.Load(settings)
	if err != nil {
		log.Fatal(err)
	}
	svc, err := app.Open(ctx, p)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := svc.Close(ctx); err != nil {
			log.Fatal(err)
		}
	}()

	res, err := svc.Import(ctx, ui.StaticDemo(svc.Today()))
	if err != nil {
		log.Fatal(err)
	}
	for _, kind := range record.AllKinds() {
		fmt.Printf("%s: %d added, %d already there\n", kind.Title(), res.Added[kind], res.Skipped[kind])
	}

	pp := printers.PrettyPrint{}
	pp.Summary(svc.Summary())
}
