// Command gql-jsonschema generates JSON Schema documents for the variables of GraphQL
// operations.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
