package int

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strconv"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"registration-backend/store"
)

// env returns the running service and its database, skipping the spec when
// either is not configured.
func env() (baseURL string, db *mongo.Database) {
	baseURL = os.Getenv("REGISTRATION_INT_URL")
	uri := os.Getenv("MONGO_URI_TEST")
	if baseURL == "" || uri == "" {
		Skip("REGISTRATION_INT_URL and MONGO_URI_TEST must be set")
	}

	m, err := mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
	Expect(err).To(BeNil())

	name := os.Getenv("MONGO_DATABASE")
	if name == "" {
		name = "event"
	}
	return baseURL, m.Database(name)
}

func cleanupMongo(db *mongo.Database) {
	_, err := db.Collection(store.RegistrationsCollection).DeleteMany(context.Background(), bson.M{})
	Expect(err).To(BeNil())
}

func countByEmail(db *mongo.Database, email string) int64 {
	n, err := db.Collection(store.RegistrationsCollection).CountDocuments(context.Background(), bson.M{"email": email})
	Expect(err).To(BeNil())
	return n
}

type response struct {
	Status  int
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func register(baseURL string, body map[string]interface{}) response {
	b, err := json.Marshal(body)
	Expect(err).To(BeNil())

	res, err := http.Post(baseURL+"/api/register", "application/json", bytes.NewReader(b))
	Expect(err).To(BeNil())
	defer res.Body.Close()

	r := response{Status: res.StatusCode}
	Expect(json.NewDecoder(res.Body).Decode(&r)).To(Succeed())
	return r
}

func registration(uid int) map[string]interface{} {
	return map[string]interface{}{
		"fullName":      "test",
		"email":         "test@test.test" + strconv.Itoa(uid),
		"contactNumber": "+91 98765 43210",
		"currentYear":   "Fourth Year",
		"branch":        "VLSI",
	}
}
