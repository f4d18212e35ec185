// Package mongosheet keeps the record sheet in a MongoDB collection, one
// document per row.
package mongosheet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cellar-club/tasting/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type rowDocument struct {
	Pos   int64    `bson:"pos"`
	Cells []string `bson:"cells"`
}

// Sheet is a store.Sheet backed by the collection named after the sheet.
type Sheet struct {
	client *mongo.Client
	coll   *mongo.Collection
	owned  bool
}

var _ store.Sheet = (*Sheet)(nil)

// Connect dials uri and opens the sheet collection in database. The returned
// Sheet disconnects the client on Close.
func Connect(ctx context.Context, uri, database, sheet string) (*Sheet, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongosheet: connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongosheet: ping: %w", err)
	}
	s, err := New(client, database, sheet)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	s.owned = true
	if err := s.ensureIndex(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing client. Close leaves the client connected.
func New(client *mongo.Client, database, sheet string) (*Sheet, error) {
	if client == nil {
		return nil, errors.New("mongosheet: client is nil")
	}
	if database == "" || sheet == "" {
		return nil, errors.New("mongosheet: database and sheet name are required")
	}
	return &Sheet{client: client, coll: client.Database(database).Collection(sheet)}, nil
}

func (s *Sheet) ensureIndex(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "pos", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("mongosheet: create index: %w", err)
	}
	return nil
}

// rowOrder sorts by position, then by _id so that rows sharing a position
// always come back in insertion order.
func rowOrder(dir int) bson.D {
	return bson.D{{Key: "pos", Value: dir}, {Key: "_id", Value: dir}}
}

// edge returns the row at the lowest (dir 1) or highest (dir -1) position.
func (s *Sheet) edge(ctx context.Context, dir int) (*rowDocument, error) {
	opts := options.FindOne().SetSort(rowOrder(dir))
	var doc rowDocument
	err := s.coll.FindOne(ctx, bson.D{}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *Sheet) ReadHeader(ctx context.Context) ([]string, error) {
	doc, err := s.edge(ctx, 1)
	if err != nil {
		return nil, fmt.Errorf("mongosheet: read header: %w", err)
	}
	if doc == nil {
		return []string{}, nil
	}
	return doc.Cells, nil
}

func (s *Sheet) WriteHeader(ctx context.Context, header []string) error {
	first, err := s.edge(ctx, 1)
	if err != nil {
		return fmt.Errorf("mongosheet: find first position: %w", err)
	}
	pos := int64(1)
	if first != nil {
		pos = first.Pos - 1
	}
	if _, err := s.coll.InsertOne(ctx, rowDocument{Pos: pos, Cells: header}); err != nil {
		return fmt.Errorf("mongosheet: insert header: %w", err)
	}
	return nil
}

func (s *Sheet) AppendRow(ctx context.Context, cells []string) error {
	last, err := s.edge(ctx, -1)
	if err != nil {
		return fmt.Errorf("mongosheet: find last position: %w", err)
	}
	pos := int64(1)
	if last != nil {
		pos = last.Pos + 1
	}
	if _, err := s.coll.InsertOne(ctx, rowDocument{Pos: pos, Cells: cells}); err != nil {
		return fmt.Errorf("mongosheet: append row: %w", err)
	}
	return nil
}

func (s *Sheet) ReadAllRows(ctx context.Context) ([]map[string]string, error) {
	cur, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(rowOrder(1)))
	if err != nil {
		return nil, fmt.Errorf("mongosheet: read rows: %w", err)
	}
	var docs []rowDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongosheet: decode rows: %w", err)
	}
	if len(docs) == 0 {
		return []map[string]string{}, nil
	}
	cells := make([][]string, 0, len(docs)-1)
	for _, d := range docs[1:] {
		cells = append(cells, d.Cells)
	}
	return store.MapRows(docs[0].Cells, cells), nil
}

func (s *Sheet) Close() error {
	if !s.owned {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
