package sqlguard_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/covidash/pkg/domain/model"
	"github.com/secmon-lab/covidash/pkg/service/sqlguard"
)

func TestGuard_Check(t *testing.T) {
	guard := sqlguard.New()

	testCases := []struct {
		name    string
		query   string
		allowed bool
	}{
		{name: "default query", query: model.DefaultCountriesSQL, allowed: true},
		{name: "lowercase select", query: "select * from ECDC_GLOBAL limit 10", allowed: true},
		{name: "column named like keyword", query: "SELECT CREATED_AT, UPDATED_BY FROM T", allowed: true},
		{name: "replace function", query: "SELECT REPLACE(COUNTRY_REGION, '_', ' ') FROM ECDC_GLOBAL", allowed: true},
		{name: "CTE", query: "WITH m AS (SELECT 1 AS X) SELECT X FROM m", allowed: true},
		{name: "snowflake syntax", query: "SELECT DATE_TRUNC('MONTH', DATE) AS MONTH FROM ECDC_GLOBAL QUALIFY ROW_NUMBER() OVER (PARTITION BY ISO3166_1 ORDER BY DATE) = 1", allowed: true},
		{name: "keyword inside literal", query: "SELECT * FROM ECDC_GLOBAL WHERE COUNTRY_REGION = 'Use'", allowed: true},
		{name: "several keywords inside literals", query: "SELECT 'SET', 'CALL', 'COPY', 'PUT', 'REMOVE', 'BEGIN' FROM T", allowed: true},
		{name: "quoted identifier named like keyword", query: `SELECT "COPY", "Set" FROM T`, allowed: true},
		{name: "doubled quote escape", query: "SELECT * FROM T WHERE NOTE = 'It''s time to USE masks'", allowed: true},
		{name: "comment marker and semicolon inside literal", query: "SELECT 'a--b; c' FROM T;", allowed: true},
		{name: "empty", query: "   ", allowed: false},
		{name: "unterminated literal", query: "SELECT 'abc FROM T", allowed: false},
		{name: "backslash escaped quote hides drop", query: `SELECT 'a\'' ; DROP TABLE T; SELECT '1'`, allowed: false},
		{name: "keyword right after literal", query: "SELECT 'x' FROM T; USE WAREHOUSE W", allowed: false},
		{name: "delete", query: "DELETE FROM ECDC_GLOBAL", allowed: false},
		{name: "drop after select", query: "SELECT 1; DROP TABLE ECDC_GLOBAL", allowed: false},
		{name: "multiple selects", query: "SELECT 1; SELECT 2;", allowed: false},
		{name: "line comment", query: "SELECT 1 -- hidden", allowed: false},
		{name: "block comment", query: "SELECT /* x */ 1", allowed: false},
		{name: "CTE wrapping insert", query: "WITH x AS (SELECT 1) INSERT INTO T SELECT * FROM x", allowed: false},
		{name: "grant", query: "GRANT ROLE ACCOUNTADMIN TO USER bob", allowed: false},
		{name: "use warehouse", query: "SELECT 1 FROM T WHERE 1=1 AND USE", allowed: false},
		{name: "show", query: "SHOW TABLES", allowed: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := guard.Check(tc.query)
			if tc.allowed {
				gt.NoError(t, err)
			} else {
				gt.Error(t, err)
				gt.True(t, errors.Is(err, model.ErrQueryRejected))
			}
		})
	}
}

func TestReason(t *testing.T) {
	guard := sqlguard.New()

	err := guard.Check("SHOW TABLES")
	gt.Error(t, err).Required()
	gt.Equal(t, sqlguard.Reason(err), "only SELECT and WITH queries are allowed")

	err = guard.Check("SELECT 1 FROM T WHERE 1=1 AND USE")
	gt.Error(t, err).Required()
	gt.Equal(t, sqlguard.Reason(err), "forbidden keyword USE")

	gt.Equal(t, sqlguard.Reason(errors.New("other")), "other")
}

func TestGuard_MaxLength(t *testing.T) {
	query := "SELECT " + strings.Repeat("1 + ", 50) + "1"

	gt.Error(t, sqlguard.New(sqlguard.WithMaxLength(32)).Check(query))
	gt.NoError(t, sqlguard.New(sqlguard.WithMaxLength(0)).Check(query))
}
