package services

import (
	"fmt"
	"reflect"
	"testing"

	"stockfinder/internal/dataset"
	"stockfinder/internal/models"
	"stockfinder/internal/testutil"
)

const testValuationYear = 2023

// wideCriteria returns criteria whose ranges admit every fixture record.
func wideCriteria(sectors ...string) ScreenCriteria {
	wide := Range{Min: -1e15, Max: 1e15}
	return ScreenCriteria{
		Sectors:         sectors,
		Price:           wide,
		PE:              wide,
		DividendYield:   wide,
		DebtToEquity:    wide,
		OperatingIncome: wide,
	}
}

func screenerOver(records ...models.SecurityRecord) ScreenerServicer {
	return NewScreenerService(dataset.NewStoreFromRecords(records), testValuationYear)
}

func resultIDs(result *ScreenResult) []string {
	ids := make([]string, 0, len(result.Results))
	for _, r := range result.Results {
		ids = append(ids, r.Record.InstrumentID)
	}
	return ids
}

func TestFilterAndRank(t *testing.T) {
	recordA := testutil.Record("A", "Alpha", "Tech", 2023, 100)
	recordA.PE = testutil.Float(10)
	recordB := testutil.Record("B", "Beta", "Tech", 2023, 200)
	recordB.PE = testutil.Float(15)
	recordC := testutil.Record("C", "Gamma", "Energy", 2022, 50)
	recordC.PE = testutil.Float(8)

	t.Run("sector_and_year_filter", func(t *testing.T) {
		svc := screenerOver(recordA, recordB, recordC)

		criteria := wideCriteria("Tech")
		criteria.Price = Range{Min: 0, Max: 1000}
		criteria.PE = Range{Min: 0, Max: 20}

		result, err := svc.FilterAndRank(criteria)
		testutil.AssertNoError(t, err)

		// B before A (price descending); C excluded by sector and year.
		want := []string{"B", "A"}
		if got := resultIDs(result); !reflect.DeepEqual(got, want) {
			t.Errorf("expected results %v, got %v", want, got)
		}
		if result.Notice != "" {
			t.Errorf("expected no notice for non-empty result, got %q", result.Notice)
		}
		if result.Results[0].Rank != 1 || result.Results[1].Rank != 2 {
			t.Errorf("expected ranks 1,2, got %d,%d", result.Results[0].Rank, result.Results[1].Rank)
		}
	})

	t.Run("all_sentinel_keeps_every_sector", func(t *testing.T) {
		svc := screenerOver(recordA, recordB, recordC)

		result, err := svc.FilterAndRank(wideCriteria(AllSectors))
		testutil.AssertNoError(t, err)

		// No sector exclusion, but the year pin still removes C.
		want := []string{"B", "A"}
		if got := resultIDs(result); !reflect.DeepEqual(got, want) {
			t.Errorf("expected results %v, got %v", want, got)
		}
		if result.SectorNote != "You have selected stocks from all sectors." {
			t.Errorf("unexpected sector note: %q", result.SectorNote)
		}
	})

	t.Run("empty_sector_selection_keeps_every_sector", func(t *testing.T) {
		svc := screenerOver(recordA, recordB, recordC)

		result, err := svc.FilterAndRank(wideCriteria())
		testutil.AssertNoError(t, err)

		want := []string{"B", "A"}
		if got := resultIDs(result); !reflect.DeepEqual(got, want) {
			t.Errorf("expected results %v, got %v", want, got)
		}
	})

	t.Run("range_bounds_are_inclusive", func(t *testing.T) {
		svc := screenerOver(recordA, recordB)

		// Rows sitting exactly on the slider's min or max are included.
		criteria := wideCriteria()
		criteria.Price = Range{Min: 100, Max: 200}

		result, err := svc.FilterAndRank(criteria)
		testutil.AssertNoError(t, err)

		want := []string{"B", "A"}
		if got := resultIDs(result); !reflect.DeepEqual(got, want) {
			t.Errorf("expected results %v, got %v", want, got)
		}
	})

	t.Run("point_range_is_a_single_point_filter", func(t *testing.T) {
		svc := screenerOver(recordA, recordB)

		criteria := wideCriteria()
		criteria.Price = Range{Min: 100, Max: 100}

		result, err := svc.FilterAndRank(criteria)
		testutil.AssertNoError(t, err)

		want := []string{"A"}
		if got := resultIDs(result); !reflect.DeepEqual(got, want) {
			t.Errorf("expected results %v, got %v", want, got)
		}
	})

	t.Run("one_failing_range_drops_the_row", func(t *testing.T) {
		svc := screenerOver(recordA, recordB)

		criteria := wideCriteria()
		criteria.PE = Range{Min: 0, Max: 12} // excludes B (pe=15)

		result, err := svc.FilterAndRank(criteria)
		testutil.AssertNoError(t, err)

		want := []string{"A"}
		if got := resultIDs(result); !reflect.DeepEqual(got, want) {
			t.Errorf("expected results %v, got %v", want, got)
		}
	})

	t.Run("null_field_never_matches", func(t *testing.T) {
		noPE := testutil.Record("N", "NoPE", "Tech", 2023, 500)
		noPE.PE = nil
		svc := screenerOver(recordA, noPE)

		result, err := svc.FilterAndRank(wideCriteria())
		testutil.AssertNoError(t, err)

		want := []string{"A"}
		if got := resultIDs(result); !reflect.DeepEqual(got, want) {
			t.Errorf("expected results %v, got %v", want, got)
		}
	})

	t.Run("dedup_keeps_highest_price_row", func(t *testing.T) {
		low := testutil.Record("D", "Delta", "Tech", 2023, 100)
		high := testutil.Record("D", "Delta", "Tech", 2023, 300)
		svc := screenerOver(low, high, recordA)

		result, err := svc.FilterAndRank(wideCriteria())
		testutil.AssertNoError(t, err)

		want := []string{"D", "A"}
		if got := resultIDs(result); !reflect.DeepEqual(got, want) {
			t.Errorf("expected results %v, got %v", want, got)
		}
		if result.Results[0].Record.Price != 300 {
			t.Errorf("expected the higher-priced duplicate to win, got price %v", result.Results[0].Record.Price)
		}
	})

	t.Run("top_five_cut", func(t *testing.T) {
		var records []models.SecurityRecord
		for i := 1; i <= 7; i++ {
			id := fmt.Sprintf("S%d", i)
			records = append(records, testutil.Record(id, "Stock "+id, "Tech", 2023, float64(100*i)))
		}
		svc := screenerOver(records...)

		result, err := svc.FilterAndRank(wideCriteria())
		testutil.AssertNoError(t, err)

		want := []string{"S7", "S6", "S5", "S4", "S3"}
		if got := resultIDs(result); !reflect.DeepEqual(got, want) {
			t.Errorf("expected results %v, got %v", want, got)
		}
	})

	t.Run("empty_result_is_a_notice_not_an_error", func(t *testing.T) {
		svc := screenerOver(recordA, recordB)

		criteria := wideCriteria()
		criteria.Price = Range{Min: 900, Max: 1000}

		result, err := svc.FilterAndRank(criteria)
		testutil.AssertNoError(t, err)

		if len(result.Results) != 0 {
			t.Fatalf("expected empty result set, got %d results", len(result.Results))
		}
		if result.Notice != "No stocks found matching the selected criteria." {
			t.Errorf("unexpected notice: %q", result.Notice)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		svc := screenerOver(recordA, recordB, recordC)
		criteria := wideCriteria("Tech")

		first, err := svc.FilterAndRank(criteria)
		testutil.AssertNoError(t, err)
		second, err := svc.FilterAndRank(criteria)
		testutil.AssertNoError(t, err)

		if !reflect.DeepEqual(first, second) {
			t.Error("expected identical criteria to produce identical results")
		}
	})

	t.Run("idempotent_over_own_output", func(t *testing.T) {
		svc := screenerOver(recordA, recordB, recordC)
		criteria := wideCriteria()

		first, err := svc.FilterAndRank(criteria)
		testutil.AssertNoError(t, err)

		var subset []models.SecurityRecord
		for _, r := range first.Results {
			subset = append(subset, r.Record)
		}
		again, err := screenerOver(subset...).FilterAndRank(criteria)
		testutil.AssertNoError(t, err)

		if !reflect.DeepEqual(resultIDs(first), resultIDs(again)) {
			t.Errorf("expected rerun over own output to be stable: %v vs %v", resultIDs(first), resultIDs(again))
		}
	})

	t.Run("sector_selection_with_no_overlap_is_empty", func(t *testing.T) {
		svc := screenerOver(recordA)

		result, err := svc.FilterAndRank(wideCriteria("Utilities"))
		testutil.AssertNoError(t, err)
		if len(result.Results) != 0 {
			t.Fatalf("expected no results for a sector absent from the dataset, got %d", len(result.Results))
		}
		if result.Notice != "No stocks found matching the selected criteria." {
			t.Errorf("unexpected notice %q", result.Notice)
		}
	})

	t.Run("inverted_range_rejected", func(t *testing.T) {
		svc := screenerOver(recordA)

		criteria := wideCriteria()
		criteria.DividendYield = Range{Min: 5, Max: 1}

		_, err := svc.FilterAndRank(criteria)
		testutil.AssertAppError(t, err, "INVALID_RANGE")
	})

	t.Run("summary_echoes_criteria", func(t *testing.T) {
		svc := screenerOver(recordA)

		criteria := wideCriteria("Tech")
		criteria.Price = Range{Min: 10, Max: 250}

		result, err := svc.FilterAndRank(criteria)
		testutil.AssertNoError(t, err)

		testutil.AssertContains(t, result.Summary, "price range from 10.00 to 250.00")
		testutil.AssertContains(t, result.SectorNote, "the following sectors: Tech.")
	})
}

func TestScreenerOptions(t *testing.T) {
	recordA := testutil.Record("A", "Alpha", "Tech", 2023, 100)
	recordC := testutil.Record("C", "Gamma", "Energy", 2022, 50)
	svc := screenerOver(recordA, recordC)

	opts := svc.Options()

	want := []string{"All", "Energy", "Tech"}
	if !reflect.DeepEqual(opts.Sectors, want) {
		t.Errorf("expected sectors %v, got %v", want, opts.Sectors)
	}

	// Bounds cover the entire table, including rows outside the valuation
	// year.
	if opts.Bounds.Price.Min != 50 || opts.Bounds.Price.Max != 100 {
		t.Errorf("expected price bounds [50,100], got [%v,%v]", opts.Bounds.Price.Min, opts.Bounds.Price.Max)
	}
}
