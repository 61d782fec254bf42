package auth_test

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jonwraymond/tokengate/auth"
)

type apiClaims struct {
	Sub   string   `json:"sub"`
	Roles []string `json:"roles"`
}

func ExampleNewPipeline() {
	secret := []byte("example-signing-secret-32-bytes!")

	store, err := auth.NewKeyStore(auth.Key{Algorithm: "HS256", Material: secret})
	if err != nil {
		panic(err)
	}
	decoder, err := auth.NewDecoder(store, auth.Policy{Issuer: "https://issuer.example"})
	if err != nil {
		panic(err)
	}
	pipeline, err := auth.NewPipeline(decoder, auth.PipelineConfig[apiClaims]{})
	if err != nil {
		panic(err)
	}

	// A request arrives carrying a token minted by the issuer.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "user123",
		"iss":   "https://issuer.example",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"roles": []string{"admin"},
	})
	raw, err := token.SignedString(secret)
	if err != nil {
		panic(err)
	}

	headers := http.Header{"Authorization": {"Bearer " + raw}}
	claims, err := pipeline.Authenticate(context.Background(), headers)
	if err != nil {
		panic(err)
	}

	fmt.Println("subject:", claims.Sub)
	fmt.Println("roles:", claims.Roles)
	// Output:
	// subject: user123
	// roles: [admin]
}

func ExampleRequire() {
	secret := []byte("example-signing-secret-32-bytes!")

	store, err := auth.NewKeyStore(auth.Key{Algorithm: "HS256", Material: secret})
	if err != nil {
		panic(err)
	}
	decoder, err := auth.NewDecoder(store, auth.Policy{})
	if err != nil {
		panic(err)
	}
	pipeline, err := auth.NewPipeline(decoder, auth.PipelineConfig[apiClaims]{})
	if err != nil {
		panic(err)
	}

	hello := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.ClaimsFrom[apiClaims](r.Context())
		fmt.Fprintf(w, "hello, %s", claims.Sub)
	})

	mux := http.NewServeMux()
	mux.Handle("/", auth.Require(pipeline, hello))
	// http.ListenAndServe(":8080", mux)
}
