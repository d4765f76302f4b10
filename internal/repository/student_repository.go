package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tohally/academy-web/internal/domain"
)

// StudentRepository defines persistence access for student records. Writes
// run inside a scoped transaction so any failure rolls the request back
// before it surfaces to the caller.
type StudentRepository interface {
	Create(ctx context.Context, student *domain.Student) error
	Update(ctx context.Context, student *domain.Student) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Student, error)
	ListOrderedByName(ctx context.Context) ([]domain.Student, error)
}

type studentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository returns a Postgres-backed implementation.
func NewStudentRepository(pool *pgxpool.Pool) StudentRepository {
	return &studentRepository{pool: pool}
}

func (r *studentRepository) Create(ctx context.Context, student *domain.Student) error {
	const query = `
        INSERT INTO alumnos (nombre, edad, categoria, contacto, tipo_solicitud)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, fecha_solicitud`

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, query,
			student.Name,
			student.Age,
			student.Category,
			student.Contact,
			student.RequestType,
		).Scan(&student.ID, &student.RequestedAt)
	})
}

func (r *studentRepository) Update(ctx context.Context, student *domain.Student) error {
	const query = `
        UPDATE alumnos SET nombre=$1, edad=$2, categoria=$3, contacto=$4, tipo_solicitud=$5
        WHERE id=$6`

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx, query,
			student.Name,
			student.Age,
			student.Category,
			student.Contact,
			student.RequestType,
			student.ID,
		)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
}

func (r *studentRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM alumnos WHERE id=$1`

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx, query, id)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
}

func (r *studentRepository) GetByID(ctx context.Context, id int64) (*domain.Student, error) {
	const query = `
        SELECT id, nombre, edad, categoria, contacto, tipo_solicitud, fecha_solicitud
        FROM alumnos WHERE id=$1`

	var student domain.Student
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.Name,
		&student.Age,
		&student.Category,
		&student.Contact,
		&student.RequestType,
		&student.RequestedAt,
	); err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) ListOrderedByName(ctx context.Context) ([]domain.Student, error) {
	// Secondary id ordering keeps the listing stable when two records share
	// a name.
	const query = `
        SELECT id, nombre, edad, categoria, contacto, tipo_solicitud, fecha_solicitud
        FROM alumnos ORDER BY nombre ASC, id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := make([]domain.Student, 0)
	for rows.Next() {
		var student domain.Student
		if err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.Age,
			&student.Category,
			&student.Contact,
			&student.RequestType,
			&student.RequestedAt,
		); err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	return students, rows.Err()
}
