package rowstore

import (
	"context"
	"fmt"
	"jazaidoc-service/internal/app/contracts"
	"jazaidoc-service/internal/pkg/constvars"
	"jazaidoc-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// rowDocument stores one sheet row. Position is the 1-based row number.
type rowDocument struct {
	Container string   `bson:"container"`
	Sheet     string   `bson:"sheet"`
	Position  int      `bson:"position"`
	Values    []string `bson:"values"`
}

type mongoRowStore struct {
	Collection *mongo.Collection
	Log        *zap.Logger
}

func NewMongoRowStore(db *mongo.Client, dbName string, logger *zap.Logger) contracts.RowStore {
	return &mongoRowStore{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionRows),
		Log:        logger,
	}
}

// EnsureIndexes creates the unique row index. It is called once by provisioning.
func (s *mongoRowStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "container", Value: 1}, {Key: "sheet", Value: 1}, {Key: "position", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return exceptions.ErrRowStore(err, "EnsureIndexes")
	}
	return nil
}

func (s *mongoRowStore) ReadRange(ctx context.Context, container, reference string) ([][]string, error) {
	ref, err := parseRange(reference)
	if err != nil {
		return nil, exceptions.ErrInvalidRangeReference(err, reference)
	}

	docs, err := s.findSheet(ctx, container, ref.Sheet)
	if err != nil {
		s.logFailure("mongoRowStore.ReadRange", container, reference, err)
		return nil, exceptions.ErrRowStore(err, "ReadRange")
	}
	return ref.project(trimTrailingEmpty(assembleRows(docs))), nil
}

func (s *mongoRowStore) AppendRow(ctx context.Context, container, sheet string, values []string) error {
	docs, err := s.findSheet(ctx, container, sheet)
	if err != nil {
		s.logFailure("mongoRowStore.AppendRow", container, sheet, err)
		return exceptions.ErrRowStore(err, "AppendRow")
	}

	position := len(trimTrailingEmpty(assembleRows(docs))) + 1
	_, err = s.Collection.UpdateOne(ctx,
		bson.M{"container": container, "sheet": sheet, "position": position},
		bson.M{"$set": bson.M{"values": append([]string{}, values...)}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		s.logFailure("mongoRowStore.AppendRow", container, sheet, err)
		return exceptions.ErrRowStore(err, "AppendRow")
	}
	return nil
}

func (s *mongoRowStore) UpdateCell(ctx context.Context, container, reference, value string) error {
	ref, err := parseCell(reference)
	if err != nil {
		return exceptions.ErrInvalidCellReference(err, reference)
	}

	filter := bson.M{"container": container, "sheet": ref.Sheet, "position": ref.Row}
	var doc rowDocument
	err = s.Collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil && err != mongo.ErrNoDocuments {
		s.logFailure("mongoRowStore.UpdateCell", container, reference, err)
		return exceptions.ErrRowStore(err, "UpdateCell")
	}

	values := setCell(doc.Values, ref.Col, value)
	_, err = s.Collection.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"values": values}}, options.Update().SetUpsert(true))
	if err != nil {
		s.logFailure("mongoRowStore.UpdateCell", container, reference, err)
		return exceptions.ErrRowStore(err, "UpdateCell")
	}
	return nil
}

func (s *mongoRowStore) DeleteRow(ctx context.Context, container, sheet string, rowIndex int) error {
	result, err := s.Collection.DeleteOne(ctx, bson.M{"container": container, "sheet": sheet, "position": rowIndex})
	if err != nil {
		s.logFailure("mongoRowStore.DeleteRow", container, sheet, err)
		return exceptions.ErrRowStore(err, "DeleteRow")
	}
	if result.DeletedCount == 0 {
		return exceptions.ErrRowStore(fmt.Errorf("row %d out of range", rowIndex), "DeleteRow")
	}

	// Rows below shift up one position, in ascending order so the unique index holds.
	cursor, err := s.Collection.Find(ctx,
		bson.M{"container": container, "sheet": sheet, "position": bson.M{"$gt": rowIndex}},
		options.Find().SetSort(bson.D{{Key: "position", Value: 1}}),
	)
	if err != nil {
		s.logFailure("mongoRowStore.DeleteRow", container, sheet, err)
		return exceptions.ErrRowStore(err, "DeleteRow")
	}
	var below []rowDocument
	if err := cursor.All(ctx, &below); err != nil {
		return exceptions.ErrRowStore(err, "DeleteRow")
	}
	for _, doc := range below {
		_, err := s.Collection.UpdateOne(ctx,
			bson.M{"container": container, "sheet": sheet, "position": doc.Position},
			bson.M{"$set": bson.M{"position": doc.Position - 1}},
		)
		if err != nil {
			s.logFailure("mongoRowStore.DeleteRow", container, sheet, err)
			return exceptions.ErrRowStore(err, "DeleteRow")
		}
	}
	return nil
}

func (s *mongoRowStore) EnsureSheet(ctx context.Context, container, sheet string, header []string) error {
	count, err := s.Collection.CountDocuments(ctx, bson.M{"container": container, "sheet": sheet})
	if err != nil {
		s.logFailure("mongoRowStore.EnsureSheet", container, sheet, err)
		return exceptions.ErrRowStore(err, "EnsureSheet")
	}
	if count > 0 || len(header) == 0 {
		return nil
	}

	_, err = s.Collection.InsertOne(ctx, rowDocument{Container: container, Sheet: sheet, Position: 1, Values: header})
	if err != nil {
		s.logFailure("mongoRowStore.EnsureSheet", container, sheet, err)
		return exceptions.ErrRowStore(err, "EnsureSheet")
	}
	return nil
}

func (s *mongoRowStore) findSheet(ctx context.Context, container, sheet string) ([]rowDocument, error) {
	cursor, err := s.Collection.Find(ctx,
		bson.M{"container": container, "sheet": sheet},
		options.Find().SetSort(bson.D{{Key: "position", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	var docs []rowDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *mongoRowStore) logFailure(operation, container, reference string, err error) {
	s.Log.Error(operation+" failed",
		zap.String(constvars.LoggingContainerKey, container),
		zap.String(constvars.LoggingRangeKey, reference),
		zap.Error(err),
	)
}

// assembleRows lays documents out by position, leaving gaps as empty rows.
func assembleRows(docs []rowDocument) [][]string {
	if len(docs) == 0 {
		return nil
	}
	last := 0
	for _, doc := range docs {
		if doc.Position > last {
			last = doc.Position
		}
	}
	rows := make([][]string, last)
	for i := range rows {
		rows[i] = []string{}
	}
	for _, doc := range docs {
		if doc.Position >= 1 {
			rows[doc.Position-1] = doc.Values
		}
	}
	return rows
}
