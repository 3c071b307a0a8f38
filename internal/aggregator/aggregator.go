// Package aggregator orchestrates ingestion of the declared account
// sources, feeding parsed records through the ledger store and assembling
// the in-memory view handed to reporting consumers.
package aggregator

import (
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/bankbook-dev/bankbook/internal/feed"
	"github.com/bankbook-dev/bankbook/internal/ledger"
	"github.com/bankbook-dev/bankbook/internal/model"
	"github.com/bankbook-dev/bankbook/internal/parser"
)

// Source is one declared account source. A Source with no path (or with
// Goal set) is a goal-tracking account: it appears in the output view with
// a zero balance and no transactions so consumers see a stable key set.
type Source struct {
	Name string
	Type model.AccountType
	Path string
	Goal bool
}

// Aggregator runs ingestion. Sources are processed sequentially, one file
// completing before the next begins; failure of one source degrades that
// account to a placeholder and never aborts the run.
type Aggregator struct {
	store *ledger.Store
	log   zerolog.Logger
}

// New creates an Aggregator writing through the given store.
func New(store *ledger.Store, log zerolog.Logger) *Aggregator {
	return &Aggregator{store: store, log: log}
}

// Ingest parses every source in declared order and returns the assembled
// view. The view reflects everything seen in this run; the store reflects
// everything ever seen, deduplicated.
func (a *Aggregator) Ingest(sources []Source) *model.View {
	runLog := a.log.With().Str("run_id", uuid.NewString()).Logger()

	view := model.NewView()
	for _, src := range sources {
		a.ingestSource(runLog, src, view)
	}
	return view
}

func (a *Aggregator) ingestSource(log zerolog.Logger, src Source, view *model.View) {
	// Goal-tracking accounts have no source by design; they are part of the
	// stable key set, not placeholders.
	if src.Goal || src.Path == "" {
		view.Put(src.Name, &model.AccountData{
			Type:         src.Type,
			Transactions: []model.TransactionRecord{},
		})
		return
	}

	if _, err := os.Stat(src.Path); err != nil {
		log.Info().Str("account", src.Name).Str("path", src.Path).
			Msg("source file absent, using placeholder")
		view.Put(src.Name, placeholder(src))
		return
	}

	res := parser.ParseFile(src.Path)
	if !res.OK() {
		log.Warn().Str("account", src.Name).Str("path", src.Path).
			Str("reason", res.Degraded).Msg("source file unreadable, using placeholder")
		data := placeholder(src)
		data.Degraded = res.Degraded
		view.Put(src.Name, data)
		return
	}

	if res.HasBalance {
		if _, err := a.store.SaveBalanceSnapshot(src.Name, res.Balance); err != nil {
			log.Warn().Err(err).Str("account", src.Name).Msg("saving balance snapshot")
		}
	}

	newCount := a.saveAll(log, src.Name, res.Records)
	if newCount > 0 {
		log.Info().Str("account", src.Name).Int("new", newCount).
			Int("seen", len(res.Records)).Msg("saved new transactions")
	}

	view.Put(src.Name, &model.AccountData{
		Balance:      res.Balance,
		Type:         src.Type,
		Transactions: withAccount(res.Records, src.Name),
	})
}

// MergeFeed folds normalized external-feed transactions into an existing
// view and the store. Accounts named by the feed mapping but absent from
// the view are added at the end of the declared order.
func (a *Aggregator) MergeFeed(view *model.View, txs []feed.Transaction, accountMap map[string]string) {
	res := feed.Normalize(txs, accountMap)
	if res.Skipped > 0 {
		a.log.Warn().Int("skipped", res.Skipped).
			Msg("feed rows skipped (unmapped account or zero amount)")
	}

	for account, records := range res.ByAccount {
		newCount := a.saveAll(a.log, account, records)
		if newCount > 0 {
			a.log.Info().Str("account", account).Int("new", newCount).
				Msg("saved new feed transactions")
		}

		data, ok := view.Accounts[account]
		if !ok {
			data = &model.AccountData{Type: model.AccountTypeChecking}
			view.Put(account, data)
		}
		data.Placeholder = false
		data.Transactions = append(data.Transactions, withAccount(records, account)...)
	}
}

// saveAll writes every non-zero record through the store. Duplicate skips
// are counted as seen, not as failures; a single failed write is logged and
// the rest of the batch continues.
func (a *Aggregator) saveAll(log zerolog.Logger, account string, records []model.TransactionRecord) int {
	newCount := 0
	for _, rec := range records {
		if rec.Amount.IsZero() {
			continue
		}
		rec.Account = account
		fresh, err := a.store.SaveTransaction(rec)
		if err != nil {
			log.Warn().Err(err).Str("account", account).Msg("saving transaction")
			continue
		}
		if fresh {
			newCount++
		}
	}
	return newCount
}

func placeholder(src Source) *model.AccountData {
	return &model.AccountData{
		Balance:      decimal.Zero,
		Type:         src.Type,
		Transactions: []model.TransactionRecord{},
		Placeholder:  true,
	}
}

func withAccount(records []model.TransactionRecord, account string) []model.TransactionRecord {
	out := make([]model.TransactionRecord, len(records))
	for i, rec := range records {
		rec.Account = account
		rec.ID = ledger.ContentID(rec)
		out[i] = rec
	}
	return out
}
