// Package pkg provides the core libraries for seatplan bus seat maps.
//
// # Overview
//
// Seatplan turns a trip's seat availability into the bus model's physical
// seat arrangement and tracks the seats a passenger picks. The pkg
// directory is organized into these areas:
//
//  1. [seatmap] - Layout builders for the VIP and 580 models
//  2. [selection] - Seat picks: toggle and reconcile against availability
//  3. [integrations] - Booking backend clients with caching and retry
//  4. [planner] - Fetch-and-build coordination that discards stale results
//  5. [render] - Terminal and JSON renderings of a layout
//  6. [session] - Booking drafts persisted between runs
//  7. [cache], [observability], [errors] - Supporting infrastructure
//
// # Architecture
//
// The typical data flow through seatplan:
//
//	Booking backend (GET /trips/{tripId}/seats)
//	         ↓
//	    [integrations/seatdata] (fetch + cache the snapshot)
//	         ↓
//	    [planner] (generation check, build)
//	         ↓
//	    [seatmap] (VIP or 580 layout)
//	         ↓
//	    [render] text / JSON, with [selection] applied
//
// # Quick Start
//
//	client := seatdata.NewClient(seatdata.Config{BaseURL: "https://api.example.com/v1"})
//	loader := planner.NewLoader(client, nil, nil)
//
//	state, err := loader.Load(ctx, seatdata.NewKey("8841", "vip", "2025-03-14"))
//	if err != nil {
//	    return err
//	}
//	if !state.Available {
//	    fmt.Println(state.Reason)
//	    return nil
//	}
//	fmt.Println(render.RenderText(state.Layout, selection.New(3, 4), render.TextOptions{}))
package pkg
