package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/Gautamshailendra50/video-stream-app/internal/domain"
)

func (r *PGRepo) videosTable() string { return fmt.Sprintf("%s.videos", r.schema) }

func (r *PGRepo) CreateVideo(ctx context.Context, v domain.Video) (domain.Video, error) {
	q := r.qb().Insert(r.videosTable()).
		Columns("title", "file_name", "mime_type", "size_bytes").
		Values(v.Title, v.FileName, v.MIME, v.SizeBytes).
		Suffix("RETURNING id, title, file_name, mime_type, size_bytes, created_at, updated_at")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreateVideo", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var out domain.Video
	if err := row.Scan(&out.ID, &out.Title, &out.FileName, &out.MIME, &out.SizeBytes, &out.CreatedAt, &out.UpdatedAt); err != nil {
		r.logger.Printf("CreateVideo scan error after %s: %v", time.Since(start), err)
		return domain.Video{}, err
	}
	r.logger.Printf("CreateVideo ok in %s id=%s title=%q", time.Since(start), out.ID, out.Title)
	return out, nil
}

func (r *PGRepo) VideoByID(ctx context.Context, id domain.VideoID) (domain.Video, error) {
	q := r.qb().Select("id", "title", "file_name", "mime_type", "size_bytes", "created_at", "updated_at").
		From(r.videosTable()).
		Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("VideoByID", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var v domain.Video
	if err := row.Scan(&v.ID, &v.Title, &v.FileName, &v.MIME, &v.SizeBytes, &v.CreatedAt, &v.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("VideoByID not found in %s id=%s", time.Since(start), id)
			return domain.Video{}, domain.ErrNotFound
		}
		r.logger.Printf("VideoByID scan error after %s: %v", time.Since(start), err)
		return domain.Video{}, err
	}
	r.logger.Printf("VideoByID ok in %s id=%s", time.Since(start), v.ID)
	return v, nil
}

func (r *PGRepo) UpdateVideo(ctx context.Context, v domain.Video) error {
	q := r.qb().Update(r.videosTable()).
		SetMap(map[string]any{
			"title":      v.Title,
			"file_name":  v.FileName,
			"mime_type":  v.MIME,
			"size_bytes": v.SizeBytes,
			"updated_at": sq.Expr("now()"),
		}).
		Where(sq.Eq{"id": v.ID})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("UpdateVideo", sqlStr, args)

	start := time.Now()
	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("UpdateVideo exec error after %s: %v", time.Since(start), err)
		return err
	}
	if tag.RowsAffected() == 0 {
		r.logger.Printf("UpdateVideo no rows affected in %s id=%s", time.Since(start), v.ID)
		return domain.ErrNotFound
	}
	r.logger.Printf("UpdateVideo ok in %s id=%s", time.Since(start), v.ID)
	return nil
}

func (r *PGRepo) DeleteVideo(ctx context.Context, id domain.VideoID) error {
	q := r.qb().Delete(r.videosTable()).Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("DeleteVideo", sqlStr, args)

	start := time.Now()
	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("DeleteVideo exec error after %s: %v", time.Since(start), err)
		return err
	}
	if tag.RowsAffected() == 0 {
		r.logger.Printf("DeleteVideo no rows affected in %s id=%s", time.Since(start), id)
		return domain.ErrNotFound
	}
	r.logger.Printf("DeleteVideo ok in %s id=%s", time.Since(start), id)
	return nil
}

// VideosPage: страница + общее количество. Порядок фиксированный,
// чтобы страницы были стабильны между вызовами.
func (r *PGRepo) VideosPage(ctx context.Context, offset, limit int) ([]domain.Video, int64, error) {
	q := r.qb().Select("id", "title", "file_name", "mime_type", "size_bytes", "created_at", "updated_at").
		From(r.videosTable()).
		OrderBy("created_at DESC", "id ASC").
		Offset(uint64(offset)).
		Limit(uint64(limit))

	sqlStr, args, _ := q.ToSql()
	r.logSQL("VideosPage", sqlStr, args)

	start := time.Now()
	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("VideosPage query error after %s: %v", time.Since(start), err)
		return nil, 0, err
	}
	defer rows.Close()

	var res []domain.Video
	for rows.Next() {
		var v domain.Video
		if err := rows.Scan(&v.ID, &v.Title, &v.FileName, &v.MIME, &v.SizeBytes, &v.CreatedAt, &v.UpdatedAt); err != nil {
			r.logger.Printf("VideosPage scan error: %v", err)
			return nil, 0, err
		}
		res = append(res, v)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("VideosPage rows error: %v", err)
		return nil, 0, err
	}

	cq := r.qb().Select("COUNT(*)").From(r.videosTable())
	sqlStr, args, _ = cq.ToSql()
	r.logSQL("VideosPage.count", sqlStr, args)

	var total int64
	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&total); err != nil {
		r.logger.Printf("VideosPage count error: %v", err)
		return nil, 0, err
	}

	r.logger.Printf("VideosPage ok in %s count=%d total=%d", time.Since(start), len(res), total)
	return res, total, nil
}
