package commands

import "encoding/json"

// SchemaName names the structured output format sent to the model.
const SchemaName = "CommandResponse"

// Instructions is the system prompt for command interpretation.
const Instructions = `You translate user chat about manipulating a 3D object into structured actions.
- The object supports: scaling, rotating around X/Y/Z, and moving along the X, Y, or Z axes.
- For translation use meters: +X moves right, -X moves left, +Y moves up, -Y moves down, +Z moves forward, -Z moves back.
- Convert percentages to scale factors (e.g. +20% => 1.2).
- Convert phrases like "twice as big" to a single factor.
- Rotations use degrees, following the right-hand rule.
- If the request is ambiguous or unsupported, respond with no actions and explain why.
Return a friendly reply plus the actions array.`

// Schema constrains the model output to {reply, actions}. Move distances
// are bounded to +-1e9 and may be negative.
var Schema = json.RawMessage(`{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "reply": {"type": "string"},
    "actions": {
      "type": "array",
      "items": {
        "oneOf": [
          {
            "type": "object",
            "additionalProperties": false,
            "properties": {
              "type": {"const": "scale"},
              "factor": {"type": "number", "exclusiveMinimum": 0}
            },
            "required": ["type", "factor"]
          },
          {
            "type": "object",
            "additionalProperties": false,
            "properties": {
              "type": {"const": "rotate"},
              "axis": {"type": "string", "enum": ["x", "y", "z"]},
              "degrees": {"type": "number"}
            },
            "required": ["type", "axis", "degrees"]
          },
          {
            "type": "object",
            "additionalProperties": false,
            "properties": {
              "type": {"const": "move"},
              "axis": {"type": "string", "enum": ["x", "y", "z"]},
              "distance": {"type": "number", "minimum": -1e9, "maximum": 1e9}
            },
            "required": ["type", "axis", "distance"]
          }
        ]
      },
      "default": []
    }
  },
  "required": ["reply", "actions"]
}`)
