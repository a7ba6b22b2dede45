// Package subscription delivers management events to interested callers.
//
// A Subscription is a bounded queue of Notifications for one controller
// index. A subscription to the global index (wire.NonController) receives
// the events of every index. The producer
// (the dispatcher's reader goroutine) never blocks: when a queue is full the
// oldest queued notification is dropped and counted.
//
// Consumers pull with Next or range over Events. Both end once the
// subscription is closed and the queue has drained; Err then reports why
// (ErrSubscriptionClosed after Close, or the error passed to CloseAll, such
// as a transport closure).
//
// # Lifecycle
//
// Subscriptions do not survive reconnection. After the management socket is
// reopened callers subscribe again and rebuild state from the kernel.
package subscription
