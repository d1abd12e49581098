/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package demo

import (
	"fmt"

	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/tables"
)

// DefaultTransactions is the row count of the generated transactions dataset.
const DefaultTransactions = 10_000

var transactionColumnNames = []string{"txn_id", "user", "country", "amount", "status"}

// TransactionColumns returns the column list for the generated transactions.
func TransactionColumns() []columns.Column {
	return []columns.Column{
		{Key: "txn_id", Label: "Transaction ID", Sortable: true},
		{Key: "user", Label: "User", Sortable: true, Searchable: true},
		{Key: "country", Label: "Country", Sortable: true, Searchable: true},
		{Key: "amount", Label: "Amount", Sortable: true},
		{Key: "status", Label: "Status", Searchable: true},
	}
}

// CreateTransactionsTable generates n deterministic transactions for trying
// paging and sorting on a larger dataset.
func CreateTransactionsTable(n int) *tables.DataTable {
	countries := []string{"US", "UK", "CA", "AU", "DE", "FR", "JP", "CN", "IN", "BR"}
	statuses := []string{"pending", "completed", "cancelled", "processing"}

	rows := make([]columns.Row, n)
	for i := range n {
		rows[i] = columns.Row{
			"txn_id": columns.IntValue(int64(i)),
			// 800 distinct users, some repeat.
			"user":    columns.StringValue(fmt.Sprintf("user_%d", i%800)),
			"country": columns.StringValue(countries[i%len(countries)]),
			// Amount: deterministic but varied
			"amount": columns.IntValue(int64(10 + (i*37)%1000)),
			"status": columns.StringValue(statuses[i%len(statuses)]),
		}
	}
	return tables.NewDataTable(transactionColumnNames, rows)
}
