package internal

import (
	"context"
	"fmt"
	"lodgepay/config"
	"lodgepay/entity"
	"lodgepay/services"
	"log"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collectionLog     = "payment_log"
	collectionCharges = "charges"
	collectionAddons  = "addons"
)

// MongoDB is the optional audit store: structured log records, charge
// results and the addon catalog. The charge path works without it.
type MongoDB struct {
	ctx              context.Context
	clientOptions    *options.ClientOptions
	database         string
	logRecordsNumber int64
}

func NewMongoClient(conf *config.Config) (*MongoDB, error) {
	if !conf.Mongo.Enabled {
		return nil, nil
	}
	connectionUri := fmt.Sprintf("mongodb://%s:%s", conf.Mongo.Host, conf.Mongo.Port)
	clientOptions := options.Client().ApplyURI(connectionUri)
	if conf.Mongo.User != "" {
		clientOptions.SetAuth(options.Credential{
			Username:   conf.Mongo.User,
			Password:   conf.Mongo.Password,
			AuthSource: conf.Mongo.Database,
		})
	}
	client := &MongoDB{
		ctx:              context.Background(),
		clientOptions:    clientOptions,
		database:         conf.Mongo.Database,
		logRecordsNumber: conf.LogRecords,
	}
	return client, nil
}

func (m *MongoDB) connect() (*mongo.Client, error) {
	connection, err := mongo.Connect(m.ctx, m.clientOptions)
	if err != nil {
		return nil, err
	}
	return connection, nil
}

func (m *MongoDB) disconnect(connection *mongo.Client) {
	err := connection.Disconnect(m.ctx)
	if err != nil {
		log.Println("mongodb disconnect error", err)
	}
}

func (m *MongoDB) WriteLogMessage(data services.Data) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)
	collection := connection.Database(m.database).Collection(collectionLog)
	_, err = collection.InsertOne(m.ctx, data)
	return err
}

// SaveCharge stores the audit document for one charge attempt.
func (m *MongoDB) SaveCharge(ctx context.Context, record *entity.ChargeRecord) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionCharges)
	_, err = collection.InsertOne(ctx, record)
	return err
}

// addonDoc is the stored form of an addon; the price is kept as its
// decimal string to avoid lossy float round trips.
type addonDoc struct {
	Name  string `bson:"name"`
	Price string `bson:"price"`
}

func (m *MongoDB) GetAddons(ctx context.Context) ([]entity.Addon, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionAddons)
	cursor, err := collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []addonDoc
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	addons := make([]entity.Addon, 0, len(docs))
	for _, doc := range docs {
		price, err := decimal.NewFromString(doc.Price)
		if err != nil {
			return nil, fmt.Errorf("addon %s: bad price %q", doc.Name, doc.Price)
		}
		addons = append(addons, entity.Addon{Name: doc.Name, Price: price})
	}
	return addons, nil
}

// SaveAddon upserts a catalog entry keyed by name.
func (m *MongoDB) SaveAddon(ctx context.Context, addon *entity.Addon) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionAddons)
	filter := bson.D{{Key: "name", Value: addon.Name}}
	set := bson.M{"$set": addonDoc{Name: addon.Name, Price: addon.Price.String()}}
	_, err = collection.UpdateOne(ctx, filter, set, options.Update().SetUpsert(true))
	return err
}

func (m *MongoDB) DeleteAddon(ctx context.Context, name string) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionAddons)
	_, err = collection.DeleteOne(ctx, bson.D{{Key: "name", Value: name}})
	return err
}
