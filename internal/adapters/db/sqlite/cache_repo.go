package sqlite

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"deeploc/internal/domain"
)

// CacheRepo memoizes backend translations keyed by the protected source
// text, language pair, backend and model.
type CacheRepo struct{ *Repo }

func NewCacheRepo(db *sql.DB) *CacheRepo { return &CacheRepo{NewRepo(db)} }

func (r *CacheRepo) Get(ctx context.Context, src, srcLang, tgtLang, backend, model string) (*domain.CacheEntry, error) {
	q := r.SQ.Select("id", "source_text", "src_lang", "tgt_lang", "backend", "model", "translation").
		From("cache").
		Where(sq.Eq{
			"source_text": src,
			"src_lang":    srcLang,
			"tgt_lang":    tgtLang,
			"backend":     backend,
			"model":       model,
		}).
		Limit(1)
	sqlStr, args, _ := q.ToSql()
	row := r.DB.QueryRowContext(ctx, sqlStr, args...)
	var e domain.CacheEntry
	if err := row.Scan(&e.ID, &e.SourceText, &e.SrcLang, &e.TgtLang, &e.Backend, &e.Model, &e.Translation); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *CacheRepo) Put(ctx context.Context, entry *domain.CacheEntry) error {
	q := r.SQ.Insert("cache").
		Columns("source_text", "src_lang", "tgt_lang", "backend", "model", "translation").
		Values(entry.SourceText, entry.SrcLang, entry.TgtLang, entry.Backend, entry.Model, entry.Translation).
		Suffix("ON CONFLICT(source_text, src_lang, tgt_lang, backend, model) DO UPDATE SET translation=excluded.translation")
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}
