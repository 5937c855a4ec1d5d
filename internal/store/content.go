package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/abhisek/studiz/ent"
	"github.com/abhisek/studiz/ent/course"
	"github.com/abhisek/studiz/ent/document"
)

// contentRepo implements ContentRepo using the ent client.
type contentRepo struct {
	client *ent.Client
}

func (r *contentRepo) PutDocument(ctx context.Context, doc DocumentRecord) error {
	existing, err := r.client.Document.Query().
		Where(document.DocID(doc.DocID)).
		Only(ctx)
	if err != nil && !ent.IsNotFound(err) {
		return fmt.Errorf("lookup document: %w", err)
	}

	if existing != nil {
		_, err = existing.Update().
			SetTitle(doc.Title).
			SetTopic(doc.Topic).
			SetContent(doc.Content).
			SetSourcePath(doc.SourcePath).
			Save(ctx)
		if err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		return nil
	}

	_, err = r.client.Document.Create().
		SetDocID(doc.DocID).
		SetTitle(doc.Title).
		SetTopic(doc.Topic).
		SetContent(doc.Content).
		SetSourcePath(doc.SourcePath).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

func (r *contentRepo) Documents(ctx context.Context) ([]DocumentRecord, error) {
	docs, err := r.client.Document.Query().
		Order(ent.Desc(document.FieldCreatedAt)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	return documentsToRecords(docs), nil
}

func (r *contentRepo) DocumentsByTopic(ctx context.Context, topic string) ([]DocumentRecord, error) {
	docs, err := r.client.Document.Query().
		Where(document.Topic(topic)).
		Order(ent.Desc(document.FieldCreatedAt)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query documents by topic: %w", err)
	}
	return documentsToRecords(docs), nil
}

func (r *contentRepo) PutCourse(ctx context.Context, rec CourseRecord) error {
	existing, err := r.client.Course.Query().
		Where(course.Name(rec.Name)).
		Only(ctx)
	if err != nil && !ent.IsNotFound(err) {
		return fmt.Errorf("lookup course: %w", err)
	}

	if existing != nil {
		builder := existing.Update().
			SetDescription(rec.Description)
		if len(rec.Concepts) > 0 {
			builder = builder.SetConcepts(rec.Concepts)
		}
		if _, err := builder.Save(ctx); err != nil {
			return fmt.Errorf("update course: %w", err)
		}
		return nil
	}

	builder := r.client.Course.Create().
		SetName(rec.Name).
		SetDescription(rec.Description)
	if len(rec.Concepts) > 0 {
		builder = builder.SetConcepts(rec.Concepts)
	}
	if _, err := builder.Save(ctx); err != nil {
		return fmt.Errorf("save course: %w", err)
	}
	return nil
}

func (r *contentRepo) Courses(ctx context.Context) ([]CourseRecord, error) {
	courses, err := r.client.Course.Query().
		Order(ent.Asc(course.FieldName)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query courses: %w", err)
	}

	records := make([]CourseRecord, len(courses))
	for i, c := range courses {
		records[i] = CourseRecord{
			Name:        c.Name,
			Description: c.Description,
			Concepts:    c.Concepts,
			CreatedAt:   c.CreatedAt,
		}
	}
	return records, nil
}

func (r *contentRepo) Topics(ctx context.Context) ([]string, error) {
	courses, err := r.Courses(ctx)
	if err != nil {
		return nil, err
	}

	topics, err := r.client.Document.Query().
		Where(document.TopicNEQ("")).
		GroupBy(document.FieldTopic).
		Strings(ctx)
	if err != nil {
		return nil, fmt.Errorf("query document topics: %w", err)
	}

	seen := make(map[string]bool)
	var out []string
	for _, c := range courses {
		if !seen[c.Name] {
			seen[c.Name] = true
			out = append(out, c.Name)
		}
	}
	for _, t := range topics {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out, nil
}

func documentsToRecords(docs []*ent.Document) []DocumentRecord {
	records := make([]DocumentRecord, len(docs))
	for i, d := range docs {
		records[i] = DocumentRecord{
			DocID:      d.DocID,
			Title:      d.Title,
			Topic:      d.Topic,
			Content:    d.Content,
			SourcePath: d.SourcePath,
			CreatedAt:  d.CreatedAt,
		}
	}
	return records
}
