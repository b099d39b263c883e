package mysql

const upsertAttractionSQL = `
INSERT INTO attractions
  (destination_key, destination, id, name, tags, description,
   entry_fee, avg_time_spent_hrs, effort_score, effort_details)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  destination        = VALUES(destination),
  name               = VALUES(name),
  tags               = VALUES(tags),
  description        = VALUES(description),
  entry_fee          = VALUES(entry_fee),
  avg_time_spent_hrs = VALUES(avg_time_spent_hrs),
  effort_score       = VALUES(effort_score),
  effort_details     = VALUES(effort_details),
  updated_at         = CURRENT_TIMESTAMP
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// Catalog order is id order; the allocator's tie-break depends on it.
const listAttractionsSQL = `
SELECT
  id,
  name,
  tags,
  description,
  entry_fee,
  avg_time_spent_hrs,
  effort_score,
  effort_details
FROM attractions
WHERE destination_key = ?
ORDER BY id
`

const listDestinationsSQL = `
SELECT MIN(destination)
FROM attractions
GROUP BY destination_key
ORDER BY MIN(destination)
`
