package storage

import (
	"database/sql"
	"errors"

	"github.com/pmarinho/fintrack/internal/domain/models"
)

// TagsRepository defines the contract for transaction tag persistence.
type TagsRepository interface {
	Insert(t *models.Tag) error
	GetAll() ([]models.Tag, error)
	GetByID(id int64) (*models.Tag, error)
	Update(t *models.Tag) error
	Delete(id int64) error
}

type tagsRepository struct {
	db *sql.DB
}

func NewTagsRepository(db *sql.DB) TagsRepository {
	return &tagsRepository{db: db}
}

// Insert stores a new tag and fills in its generated id.
func (r *tagsRepository) Insert(t *models.Tag) error {
	return r.db.QueryRow(`
		INSERT INTO tag (name, description, color)
		VALUES ($1, $2, $3)
		RETURNING id
	`, t.Name, nullString(t.Description), t.Color).Scan(&t.ID)
}

func (r *tagsRepository) GetAll() ([]models.Tag, error) {
	rows, err := r.db.Query(`SELECT id, name, description, color FROM tag ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tags []models.Tag
	for rows.Next() {
		var (
			t           models.Tag
			description sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.Name, &description, &t.Color); err != nil {
			return nil, err
		}
		t.Description = description.String
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (r *tagsRepository) GetByID(id int64) (*models.Tag, error) {
	var (
		t           models.Tag
		description sql.NullString
	)
	err := r.db.QueryRow(`SELECT id, name, description, color FROM tag WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &description, &t.Color)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	t.Description = description.String
	return &t, nil
}

func (r *tagsRepository) Update(t *models.Tag) error {
	res, err := r.db.Exec(`
		UPDATE tag SET name = $2, description = $3, color = $4 WHERE id = $1
	`, t.ID, t.Name, nullString(t.Description), t.Color)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *tagsRepository) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM tag WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
