package repository

import (
	"database/sql"

	"github.com/daverett/reporter-finder/internal/model"

	"github.com/lib/pq"
)

type ArticleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// SaveWithTopics inserts an article and its topics in one transaction.
// Returns false when the URL is already stored.
func (r *ArticleRepository) SaveWithTopics(article *model.Article, topics []string) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRow(`
		INSERT INTO article(title, url, outlet, author, source, published_at)
		VALUES($1, $2, $3, $4, $5, $6)
		ON CONFLICT (url) DO NOTHING
		RETURNING id
	`, article.Title, article.URL, article.Outlet, article.Author, article.Source, article.PublishedAt).Scan(&id)

	if err == sql.ErrNoRows {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	article.ID = id

	if len(topics) > 0 {
		_, err = tx.Exec(`
			INSERT INTO article_topic(article_id, topic)
			SELECT $1, unnest($2::text[])
		`, id, pq.Array(topics))
		if err != nil {
			return false, err
		}
	}

	return true, tx.Commit()
}

func (r *ArticleRepository) GetFeed(limit int, offset int) ([]model.Article, error) {
	rows, err := r.db.Query(`
		SELECT id, title, url, outlet, author, source, published_at, fetched_at
		FROM article
		ORDER BY published_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []model.Article
	for rows.Next() {
		var a model.Article
		err := rows.Scan(&a.ID, &a.Title, &a.URL, &a.Outlet, &a.Author, &a.Source, &a.PublishedAt, &a.FetchedAt)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return articles, nil
}

func (r *ArticleRepository) GetFeedTotal() (int, error) {
	var total int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM article
	`).Scan(&total)
	return total, err
}

func (r *ArticleRepository) GetTopicsByArticleIDs(ids []int64) (map[int64][]string, error) {
	rows, err := r.db.Query(`
		SELECT article_id, topic FROM article_topic WHERE article_id = ANY($1)
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64][]string)
	for rows.Next() {
		var id int64
		var topic string
		if err := rows.Scan(&id, &topic); err != nil {
			return nil, err
		}
		result[id] = append(result[id], topic)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// GetByAuthor returns the author's most recent stored articles.
func (r *ArticleRepository) GetByAuthor(author string, limit int) ([]model.Article, error) {
	rows, err := r.db.Query(`
		SELECT id, title, url, outlet, author, source, published_at, fetched_at
		FROM article
		WHERE author = $1
		ORDER BY published_at DESC
		LIMIT $2
	`, author, limit)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []model.Article
	for rows.Next() {
		var a model.Article
		err := rows.Scan(&a.ID, &a.Title, &a.URL, &a.Outlet, &a.Author, &a.Source, &a.PublishedAt, &a.FetchedAt)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return articles, nil
}
