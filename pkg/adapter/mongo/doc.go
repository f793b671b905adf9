// Package mongo is an adapter.Client for MongoDB built on mongo-driver/v2.
//
// Tables map to collections. Conditions become a query document ($eq, $nin,
// $gt, $gte, $lt, $lte, $in, $regex for like and ilike), several conditions
// are joined with $and, and comparisons against nil match nothing. The
// internal _id is never returned.
//
// Records keep an integer "id". Inserts without one get the next value of a
// per-table counter stored in the counters collection. Updates and deletes
// return the affected rows; they resolve matching documents first and then
// mutate them by _id, which is not atomic.
//
//	cfg, _ := config.Load[mongo.Config]()
//	client, conn, err := mongo.Open(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer conn.Disconnect(ctx)
//	activerecord.SetDefaultClient(client)
package mongo
