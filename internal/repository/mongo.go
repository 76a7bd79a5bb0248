package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoCollection implements Collection on a MongoDB collection. Records are
// keyed by a string "_id".
type mongoCollection[T any] struct {
	col *mongo.Collection
}

func (m *mongoCollection[T]) Insert(ctx context.Context, doc *T) error {
	ensureID(doc)
	_, err := m.col.InsertOne(ctx, doc)
	return err
}

func (m *mongoCollection[T]) Get(ctx context.Context, id string) (*T, error) {
	var d T
	err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (m *mongoCollection[T]) Find(ctx context.Context, q Query) ([]T, error) {
	opts := options.Find()
	if q.SortBy != "" {
		dir := 1
		if q.Desc {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: q.SortBy, Value: dir}})
	}
	if q.Skip > 0 {
		opts.SetSkip(q.Skip)
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}
	cur, err := m.col.Find(ctx, toBSON(q), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *mongoCollection[T]) FindOne(ctx context.Context, q Query) (*T, error) {
	q.Limit = 1
	list, err := m.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrNotFound
	}
	return &list[0], nil
}

func (m *mongoCollection[T]) Count(ctx context.Context, q Query) (int64, error) {
	return m.col.CountDocuments(ctx, toBSON(q))
}

func (m *mongoCollection[T]) Update(ctx context.Context, id string, set map[string]interface{}) error {
	res, err := m.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M(set)})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *mongoCollection[T]) Delete(ctx context.Context, id string) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// toBSON translates a Query into a MongoDB filter document.
func toBSON(q Query) bson.M {
	filter := bson.M{}
	for _, f := range q.Filters {
		cond := condition(f)
		if existing, ok := filter[f.Field].(bson.M); ok {
			if c, ok := cond.(bson.M); ok {
				for k, v := range c {
					existing[k] = v
				}
				continue
			}
		}
		filter[f.Field] = cond
	}
	if len(q.AnyOf) > 0 {
		or := make(bson.A, 0, len(q.AnyOf))
		for _, f := range q.AnyOf {
			or = append(or, bson.M{f.Field: condition(f)})
		}
		filter["$or"] = or
	}
	return filter
}

func condition(f Filter) interface{} {
	switch f.Op {
	case Ne:
		return bson.M{"$ne": f.Value}
	case Gt:
		return bson.M{"$gt": f.Value}
	case Gte:
		return bson.M{"$gte": f.Value}
	case Lt:
		return bson.M{"$lt": f.Value}
	case Lte:
		return bson.M{"$lte": f.Value}
	case Regex:
		return bson.M{"$regex": f.Value, "$options": "i"}
	case In:
		return bson.M{"$in": f.Value}
	default:
		return f.Value
	}
}
