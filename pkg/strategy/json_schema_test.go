package strategy

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"
)

type JsonSchemaTestSuite struct {
	suite.Suite
}

func TestJsonSchemaTestSuite(t *testing.T) {
	suite.Run(t, new(JsonSchemaTestSuite))
}

func (suite *JsonSchemaTestSuite) TestToJSONSchema() {
	type Thresholds struct {
		Oversold   float64 `json:"oversold" jsonschema:"title=Oversold,minimum=0,maximum=100,default=30"`
		Overbought float64 `json:"overbought" jsonschema:"title=Overbought,minimum=0,maximum=100,default=70"`
	}

	schema, err := ToJSONSchema(Thresholds{}, "rsi-thresholds")
	suite.Require().NoError(err)

	var result map[string]any
	suite.Require().NoError(json.Unmarshal([]byte(schema), &result))
	suite.Equal("rsi-thresholds", result["title"])

	properties, ok := result["properties"].(map[string]any)
	suite.Require().True(ok)
	suite.Contains(properties, "oversold")
	suite.Contains(properties, "overbought")
}
